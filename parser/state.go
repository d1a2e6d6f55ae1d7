package parser

import (
	"maps"
	"slices"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	KindBool Kind = iota + 1
	KindString
	KindList
	KindOverrides
	KindBlob
)

// OverrideMap holds --profile-override settings keyed by override name.
type OverrideMap map[string]string

// Value is one entry of a parsed State.
type Value struct {
	Kind      Kind
	Bool      bool
	Str       string
	List      []string
	Overrides OverrideMap
	// Blocks holds complete "<tag>\n...\n</tag>" texts. Only repeated
	// <connection> blocks produce more than one.
	Blocks []string
}

// BoolValue returns a flag value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// StringValue returns a single string value, also used for embedded blocks.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// ListValue returns a value holding one entry per option occurrence.
func ListValue(entries ...string) Value { return Value{Kind: KindList, List: entries} }

// BlobValue returns a value holding verbatim <tag> blocks.
func BlobValue(blocks ...string) Value { return Value{Kind: KindBlob, Blocks: blocks} }

// OverridesValue returns a --profile-override map value.
func OverridesValue(m OverrideMap) Value { return Value{Kind: KindOverrides, Overrides: m} }

// Present reports whether the value counts as set for mandatory option
// checks.
func (v Value) Present() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.List) > 0
	case KindOverrides:
		return len(v.Overrides) > 0
	case KindBlob:
		for _, b := range v.Blocks {
			if b != "" {
				return true
			}
		}
	}
	return false
}

func (v Value) clone() Value {
	v.List = slices.Clone(v.List)
	v.Blocks = slices.Clone(v.Blocks)
	v.Overrides = maps.Clone(v.Overrides)
	return v
}

// State is the set of collected option values of one parse, keyed by
// destination key and kept in first insertion order.
type State struct {
	keys   []string
	values map[string]Value
}

// NewState returns an empty State.
func NewState() *State {
	return &State{values: make(map[string]Value)}
}

// Get returns the value stored under key.
func (s *State) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores v under key, replacing any previous value.
func (s *State) Set(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Delete removes key.
func (s *State) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in first insertion order.
func (s *State) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the number of keys.
func (s *State) Len() int {
	return len(s.keys)
}

// appendEntry adds one list entry under key.
func (s *State) appendEntry(key, entry string) {
	v, ok := s.values[key]
	if !ok || v.Kind != KindList {
		s.Set(key, ListValue(entry))
		return
	}
	v.List = append(v.List, entry)
	s.values[key] = v
}

// appendBlocks adds blob blocks under key.
func (s *State) appendBlocks(key string, blocks ...string) {
	v, ok := s.values[key]
	if !ok || v.Kind != KindBlob {
		s.Set(key, BlobValue(blocks...))
		return
	}
	v.Blocks = append(v.Blocks, blocks...)
	s.values[key] = v
}

// Merge folds other into s key by key. Values of keys for which
// accumulates returns true are appended to, override maps are merged per
// override key, and everything else is replaced.
func (s *State) Merge(other *State, accumulates func(key string) bool) {
	for _, key := range other.keys {
		v := other.values[key].clone()
		cur, exists := s.values[key]
		switch {
		case !exists || cur.Kind != v.Kind:
			s.Set(key, v)
		case v.Kind == KindOverrides:
			merged := maps.Clone(cur.Overrides)
			maps.Copy(merged, v.Overrides)
			s.Set(key, OverridesValue(merged))
		case v.Kind == KindList && accumulates(key):
			cur.List = append(cur.List, v.List...)
			s.values[key] = cur
		case v.Kind == KindBlob && accumulates(key):
			cur.Blocks = append(cur.Blocks, v.Blocks...)
			s.values[key] = cur
		default:
			s.Set(key, v)
		}
	}
}
