// Package parser converts OpenVPN 2 style command line options and legacy
// configuration files into a self-contained OpenVPN 3 configuration
// profile.
//
// The package is organized around these pieces:
//
//   - Registry: the immutable option catalog (arity, allowed values and
//     collection behavior of every recognized option)
//   - Parser: dispatches each option to its collection strategy, reads
//     --config files recursively and inlines key material
//   - State: the ordered option values collected by one parse
//   - Generate and SanityCheck: serialize and validate a State
//
// # Usage
//
//	p := parser.New()
//	res, err := p.Parse([]string{"--config", "client.ovpn"})
//	if err != nil {
//	    return err
//	}
//	if err := res.SanityCheck(); err != nil {
//	    return err
//	}
//	profile := res.Generate()
//
// # Configuration Files
//
// A configuration file line "remote vpn.example.org 1194" is equivalent to
// the arguments "--remote vpn.example.org 1194". Text after '#' is a
// comment, and so is a line starting with ';'. Blocks such as
// <ca>...</ca> are copied verbatim into the profile. Nested --config
// options are followed up to a depth limit, and a file including itself
// is rejected.
//
// Files named by --ca, --cert, --key, --tls-auth and similar options are
// embedded as blocks. A --pkcs12 archive is split into <key>, <cert> and
// <ca> blocks, asking once for a passphrase when the archive needs one.
//
// # Errors
//
// Every parse error matches common.ErrInvalidConfig with errors.Is. Use
// errors.As to get the specific error type.
//
// # Thread Safety
//
// A Parser and a Registry may be shared between goroutines. Each Parse
// call owns its State and Result.
package parser
