package parser

import (
	"fmt"
	"strings"
)

// ArityKind selects how many value tokens an option consumes.
type ArityKind int

const (
	// ArityFlag takes no value; presence alone sets a boolean.
	ArityFlag ArityKind = iota
	// ArityScalar takes exactly one value, stored as a plain string.
	ArityScalar
	// ArityExact takes exactly N values.
	ArityExact
	// ArityAtLeast takes N or more values.
	ArityAtLeast
	// ArityZeroOrMore takes any number of values.
	ArityZeroOrMore
)

// Arity is the value count policy of an option.
type Arity struct {
	Kind ArityKind
	N    int
}

// Flag returns the arity of an option that takes no value.
func Flag() Arity { return Arity{Kind: ArityFlag} }

// Scalar returns the arity of an option that takes exactly one value,
// stored as a plain string.
func Scalar() Arity { return Arity{Kind: ArityScalar, N: 1} }

// Exact returns the arity of an option that takes exactly n values.
func Exact(n int) Arity { return Arity{Kind: ArityExact, N: n} }

// AtLeast returns the arity of an option that takes n or more values.
func AtLeast(n int) Arity { return Arity{Kind: ArityAtLeast, N: n} }

// ZeroOrMore returns the arity of an option that takes any number of
// values.
func ZeroOrMore() Arity { return Arity{Kind: ArityZeroOrMore} }

// Allows reports whether n value tokens satisfy the policy.
func (a Arity) Allows(n int) bool {
	switch a.Kind {
	case ArityFlag:
		return n == 0
	case ArityScalar:
		return n == 1
	case ArityExact:
		return n == a.N
	case ArityAtLeast:
		return n >= a.N
	default:
		return true
	}
}

// Describe renders the policy for error messages and the options listing.
func (a Arity) Describe() string {
	switch a.Kind {
	case ArityFlag:
		return "no arguments"
	case ArityScalar:
		return "exactly 1 argument"
	case ArityExact:
		return fmt.Sprintf("exactly %d %s", a.N, plural(a.N))
	case ArityAtLeast:
		return fmt.Sprintf("at least %d %s", a.N, plural(a.N))
	default:
		return "any number of arguments"
	}
}

func plural(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// Behavior selects the collection strategy applied to an option.
type Behavior int

const (
	// BehaviorStore replaces the destination on every occurrence.
	BehaviorStore Behavior = iota
	// BehaviorVarArgs appends one space-joined entry per occurrence.
	BehaviorVarArgs
	// BehaviorOverride collects --profile-override KEY VALUE pairs.
	BehaviorOverride
	// BehaviorEmbedFile inlines the named file as a <tag> block.
	BehaviorEmbedFile
	// BehaviorEmbedTLSAuth is BehaviorEmbedFile with an optional trailing
	// key-direction argument.
	BehaviorEmbedTLSAuth
	// BehaviorPKCS12 expands a PKCS#12 archive into key, cert and ca blocks.
	BehaviorPKCS12
	// BehaviorIgnore accepts the option and drops it.
	BehaviorIgnore
	// BehaviorChangeDir changes the directory relative paths resolve from.
	BehaviorChangeDir
	// BehaviorIncludeConfig reads and merges another configuration file.
	BehaviorIncludeConfig
)

var behaviorNames = map[Behavior]string{
	BehaviorStore:         "store",
	BehaviorVarArgs:       "collect",
	BehaviorOverride:      "override",
	BehaviorEmbedFile:     "embed",
	BehaviorEmbedTLSAuth:  "embed",
	BehaviorPKCS12:        "pkcs12",
	BehaviorIgnore:        "ignored",
	BehaviorChangeDir:     "chdir",
	BehaviorIncludeConfig: "include",
}

// String returns a short name of the behavior.
func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return "unknown"
}

// Group classifies options the way the help output does.
type Group int

const (
	GroupStandard Group = iota
	GroupTechPreview
	GroupIgnored
)

// OptionSpec describes one recognized option.
type OptionSpec struct {
	// Name is the option name without the leading "--".
	Name string
	// Metavar names the arguments in help output.
	Metavar string
	// Help is the one line description.
	Help  string
	Arity Arity
	// AllowedValues restricts every value token when non-empty.
	AllowedValues []string
	// Suggestions are completion hints only, never enforced.
	Suggestions []string
	Behavior    Behavior
	// Dest is the destination key in State. Defaults to the canonical
	// form of Name.
	Dest string
	// EmbedTag is the block tag for embedding behaviors. Defaults to Name.
	EmbedTag string
	// AllowEmptyFile lets an embed option appear without a filename.
	AllowEmptyFile bool
	// Integer requires every value to be a decimal integer.
	Integer bool
	// Negate makes a flag store false instead of true.
	Negate bool
	// Warn makes an ignored option produce a user visible warning.
	Warn  bool
	Group Group
}

// CompletionValues returns the values offered to shell completion.
func (s OptionSpec) CompletionValues() []string {
	if len(s.AllowedValues) > 0 {
		return s.AllowedValues
	}
	return s.Suggestions
}

func (s OptionSpec) tag() string {
	if s.EmbedTag != "" {
		return s.EmbedTag
	}
	return s.Name
}

// CanonicalKey maps an option name or block tag to its State key.
func CanonicalKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// OptionName maps a State key back to its hyphenated option name.
func OptionName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
