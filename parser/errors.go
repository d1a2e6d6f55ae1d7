package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/yllada/ovpn-profile/common"
)

// Sentinel errors returned by the parser.
var (
	// ErrCryptoUnavailable is returned when --pkcs12 is used but the parser
	// was built without a PKCS#12 decoder.
	ErrCryptoUnavailable = errors.New("PKCS#12 support is not available, cannot parse PKCS#12 files")
	// ErrIncorrectPassphrase is returned by PKCS12Decoder implementations
	// when the archive integrity check fails for the given passphrase.
	ErrIncorrectPassphrase = errors.New("pkcs12: integrity check failed, incorrect passphrase")
)

// ArityError reports an option given the wrong number of arguments.
type ArityError struct {
	Option string
	Arity  Arity
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("--%s requires %s, got %d", e.Option, e.Arity.Describe(), e.Got)
}

// Is makes every parse failure match common.ErrInvalidConfig.
func (e *ArityError) Is(target error) bool { return target == common.ErrInvalidConfig }

// UnknownOptionError reports an option missing from the registry, or a
// stray argument found where an option was expected.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	if strings.HasPrefix(e.Option, "--") {
		return fmt.Sprintf("unrecognized option: %s", e.Option)
	}
	return fmt.Sprintf("unexpected argument: %q", e.Option)
}

func (e *UnknownOptionError) Is(target error) bool { return target == common.ErrInvalidConfig }

// InvalidChoiceError reports a value outside an option's permitted set.
type InvalidChoiceError struct {
	Option  string
	Value   string
	Allowed []string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("--%s: invalid choice %q (choose from %s)",
		e.Option, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidChoiceError) Is(target error) bool { return target == common.ErrInvalidConfig }

// UnknownOverrideKeyError reports a --profile-override key that is not in
// the fixed override enumeration.
type UnknownOverrideKeyError struct {
	Key string
}

func (e *UnknownOverrideKeyError) Error() string {
	return fmt.Sprintf("invalid override key: %s", e.Key)
}

func (e *UnknownOverrideKeyError) Is(target error) bool { return target == common.ErrInvalidConfig }

// InvalidOverrideValueError reports a non-boolean value given to a
// boolean override.
type InvalidOverrideValueError struct {
	Key   string
	Value string
}

func (e *InvalidOverrideValueError) Error() string {
	return fmt.Sprintf("incorrect boolean value %q for override %q", e.Value, e.Key)
}

func (e *InvalidOverrideValueError) Is(target error) bool { return target == common.ErrInvalidConfig }

// MissingMandatoryOptionsError lists every mandatory option absent from
// a parsed state.
type MissingMandatoryOptionsError struct {
	Missing []string
}

func (e *MissingMandatoryOptionsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = "--" + OptionName(m)
	}
	return "missing mandatory options: " + strings.Join(names, ", ")
}

func (e *MissingMandatoryOptionsError) Is(target error) bool { return target == common.ErrInvalidConfig }

// EmbedIOError wraps a failure to open or read a file referenced by an
// option.
type EmbedIOError struct {
	Option   string
	Filename string
	Err      error
}

func (e *EmbedIOError) Error() string {
	return fmt.Sprintf("--%s: %s '%s'", e.Option, ioReason(e.Err), e.Filename)
}

func (e *EmbedIOError) Unwrap() error { return e.Err }

func (e *EmbedIOError) Is(target error) bool { return target == common.ErrInvalidConfig }

// ioReason returns the OS level error text without the operation and path
// prefix os.PathError adds, since the filename is reported separately.
func ioReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// PKCS12DecodeError reports a PKCS#12 archive that could not be decoded,
// including after the passphrase retry.
type PKCS12DecodeError struct {
	Filename string
	Err      error
}

func (e *PKCS12DecodeError) Error() string {
	return fmt.Sprintf("failed to decode PKCS#12 file '%s': %v", e.Filename, e.Err)
}

func (e *PKCS12DecodeError) Unwrap() error { return e.Err }

// IncludeCycleError reports a configuration file that includes itself,
// directly or through other files.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "configuration include cycle: " + strings.Join(e.Chain, " -> ")
}

func (e *IncludeCycleError) Is(target error) bool { return target == common.ErrInvalidConfig }

// IncludeDepthError reports nested --config inclusion beyond the limit.
type IncludeDepthError struct {
	Filename string
	Limit    int
}

func (e *IncludeDepthError) Error() string {
	return fmt.Sprintf("including '%s' exceeds the maximum --config nesting depth of %d", e.Filename, e.Limit)
}

func (e *IncludeDepthError) Is(target error) bool { return target == common.ErrInvalidConfig }

// UnterminatedBlockError reports an embedded <tag> block without its
// closing </tag> line.
type UnterminatedBlockError struct {
	Filename string
	Tag      string
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("%s: embedded <%s> block is missing </%s>", e.Filename, e.Tag, e.Tag)
}

func (e *UnterminatedBlockError) Is(target error) bool { return target == common.ErrInvalidConfig }
