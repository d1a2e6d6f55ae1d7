// Package vpn hands parsed profiles to OpenVPN 3.
//
// The package is organized around three types:
//
//   - ConfigManager: Talks to the net.openvpn.v3.configuration D-Bus
//     service. It pings the service awake, imports generated profiles and
//     sets profile overrides on them.
//   - Importer: Sanity checks a parser.Result, imports its generated
//     profile and applies its --profile-override settings.
//   - History: Records every import in a local SQLite database.
//
// # Import Flow
//
//  1. The CLI parses the command line and configuration files
//  2. Importer.Import runs the sanity check and generates the profile
//  3. ConfigManager.Import sends it to the configuration manager
//  4. ConfigManager.ApplyOverrides sets each override on the new object
//  5. History.Record stores the result
//
// # Thread Safety
//
// ConfigManager and History are safe for concurrent use. An Importer is
// as safe as the ConfigService it wraps.
package vpn
