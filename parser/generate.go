package parser

import (
	"cmp"
	"slices"
	"strings"
)

// frontEndKeys steer the calling front end and never appear in a profile.
var frontEndKeys = map[string]bool{
	"daemon":           true,
	"dco":              true,
	"profile_override": true,
}

// Generate serializes st into profile text. Keys are emitted in the
// registry's declaration order, unknown keys after them in sorted order.
// A nil registry uses DefaultRegistry.
func Generate(st *State, reg *Registry) string {
	if reg == nil {
		reg = DefaultRegistry()
	}

	keys := st.Keys()
	slices.SortStableFunc(keys, func(a, b string) int {
		if c := cmp.Compare(reg.rank(a), reg.rank(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	var lines []string
	for _, key := range keys {
		if frontEndKeys[key] {
			continue
		}
		v, _ := st.Get(key)
		lines = append(lines, profileLines(OptionName(key), v)...)
	}
	return strings.Join(lines, "\n")
}

func profileLines(name string, v Value) []string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return []string{name}
		}
	case KindList:
		out := make([]string, 0, len(v.List))
		for _, entry := range v.List {
			if entry == "" {
				out = append(out, name)
				continue
			}
			out = append(out, name+" "+entry)
		}
		return out
	case KindString:
		switch {
		case isEmbeddedBlock(v.Str):
			return []string{v.Str}
		case v.Str == "":
			return []string{name}
		default:
			return []string{name + " " + quoteValue(v.Str)}
		}
	case KindBlob:
		return slices.Clone(v.Blocks)
	}
	return nil
}

func isEmbeddedBlock(s string) bool {
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// quoteValue double-quotes a value holding whitespace so that it stays a
// single token when the profile is read back.
func quoteValue(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// joinValues joins the value tokens of one option occurrence into a single
// list entry, quoting tokens that hold whitespace.
func joinValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteValue(v)
	}
	return strings.Join(quoted, " ")
}
