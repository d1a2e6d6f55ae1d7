package parser

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// connectionKey is the only embedded block tag that may repeat.
const connectionKey = "connection"

// Registry is the immutable catalog of recognized options. It is safe for
// concurrent use.
type Registry struct {
	specs      []OptionSpec
	byName     map[string]int
	destOrder  []string
	accumulate map[string]bool
	completion CompletionData
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the shared OpenVPN 3 client registry.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// NewRegistry builds the OpenVPN 3 client option catalog.
func NewRegistry() *Registry {
	r, err := NewCustomRegistry(catalog())
	if err != nil {
		panic(err)
	}
	return r
}

// NewCustomRegistry builds a registry from specs, filling in default
// destinations. Duplicate option names are rejected.
func NewCustomRegistry(specs []OptionSpec) (*Registry, error) {
	r := &Registry{
		specs:      make([]OptionSpec, 0, len(specs)),
		byName:     make(map[string]int, len(specs)),
		accumulate: map[string]bool{connectionKey: true},
		completion: CompletionData{ArgValues: make(map[string][]string)},
	}

	seenDest := make(map[string]bool)
	for _, spec := range specs {
		if spec.Name == "" || strings.HasPrefix(spec.Name, "-") {
			return nil, fmt.Errorf("invalid option name %q", spec.Name)
		}
		if _, dup := r.byName[spec.Name]; dup {
			return nil, fmt.Errorf("option --%s declared twice", spec.Name)
		}
		if spec.Dest == "" {
			spec.Dest = CanonicalKey(spec.Name)
		}

		r.byName[spec.Name] = len(r.specs)
		r.specs = append(r.specs, spec)

		if spec.Behavior == BehaviorVarArgs {
			r.accumulate[spec.Dest] = true
		}
		if producesState(spec.Behavior) && !seenDest[spec.Dest] {
			seenDest[spec.Dest] = true
			r.destOrder = append(r.destOrder, spec.Dest)
		}
		if spec.Behavior == BehaviorEmbedTLSAuth && !seenDest["key_direction"] {
			seenDest["key_direction"] = true
			r.destOrder = append(r.destOrder, "key_direction")
		}

		if spec.Group == GroupIgnored {
			continue
		}
		flag := "--" + spec.Name
		r.completion.Options = append(r.completion.Options, flag)
		if values := spec.CompletionValues(); len(values) > 0 {
			r.completion.ArgValues[flag] = slices.Clone(values)
		}
	}
	return r, nil
}

func producesState(b Behavior) bool {
	switch b {
	case BehaviorIgnore, BehaviorChangeDir, BehaviorIncludeConfig, BehaviorPKCS12:
		return false
	}
	return true
}

// Lookup returns the spec of the option name, given without the leading
// "--".
func (r *Registry) Lookup(name string) (OptionSpec, error) {
	i, ok := r.byName[name]
	if !ok {
		return OptionSpec{}, &UnknownOptionError{Option: "--" + name}
	}
	return r.specs[i], nil
}

// Options returns every spec in declaration order.
func (r *Registry) Options() []OptionSpec {
	return slices.Clone(r.specs)
}

// Completion returns the shell completion metadata of the catalog.
func (r *Registry) Completion() CompletionData {
	return r.completion.clone()
}

// Accumulates reports whether values stored under key are appended to
// rather than replaced when states are merged.
func (r *Registry) Accumulates(key string) bool {
	return r.accumulate[key]
}

// rank orders destination keys for profile generation. Keys unknown to
// the registry rank after all known ones.
func (r *Registry) rank(key string) int {
	if i := slices.Index(r.destOrder, key); i >= 0 {
		return i
	}
	return len(r.destOrder)
}
