package parser

import (
	"maps"
	"slices"
)

// CompletionData lists the recognized options and the values a shell
// completion script should offer for them. Option names carry the "--"
// prefix.
type CompletionData struct {
	Options   []string            `json:"options" yaml:"options"`
	ArgValues map[string][]string `json:"argvalues" yaml:"argvalues"`
}

func (c CompletionData) clone() CompletionData {
	out := CompletionData{
		Options:   slices.Clone(c.Options),
		ArgValues: make(map[string][]string, len(c.ArgValues)),
	}
	for k, v := range c.ArgValues {
		out.ArgValues[k] = slices.Clone(v)
	}
	return out
}

// Values returns the completion values of option, with or without the
// leading "--".
func (c CompletionData) Values(option string) []string {
	if len(option) < 2 || option[:2] != "--" {
		option = "--" + option
	}
	return c.ArgValues[option]
}

// OptionsWithValues returns the options that have completion values,
// sorted.
func (c CompletionData) OptionsWithValues() []string {
	return slices.Sorted(maps.Keys(c.ArgValues))
}
