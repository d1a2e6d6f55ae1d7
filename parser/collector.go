package parser

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// apply runs the collection strategy of spec against the value tokens
// that followed the option. Every check happens before st is touched.
func (r *run) apply(spec OptionSpec, values []string, st *State, depth int) error {
	switch spec.Behavior {
	case BehaviorStore:
		return collectStore(spec, values, st)
	case BehaviorVarArgs:
		return collectVarArgs(spec, values, st)
	case BehaviorOverride:
		return collectOverride(spec, values, st)
	case BehaviorEmbedFile:
		return r.embedFile(spec, values, st)
	case BehaviorEmbedTLSAuth:
		return r.embedTLSAuth(spec, values, st)
	case BehaviorPKCS12:
		return r.extractPKCS12(spec, values, st)
	case BehaviorIgnore:
		return r.ignore(spec, values)
	case BehaviorChangeDir:
		return r.changeDir(spec, values)
	case BehaviorIncludeConfig:
		return r.includeConfig(spec, values, st, depth)
	}
	return &UnknownOptionError{Option: "--" + spec.Name}
}

func checkArity(spec OptionSpec, values []string) error {
	if !spec.Arity.Allows(len(values)) {
		return &ArityError{Option: spec.Name, Arity: spec.Arity, Got: len(values)}
	}
	return nil
}

// checkValues validates every token against the option's value
// restrictions and returns the tokens in normalised form.
func checkValues(spec OptionSpec, values []string) ([]string, error) {
	if !spec.Integer && len(spec.AllowedValues) == 0 {
		return values, nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		if spec.Integer {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, &InvalidChoiceError{Option: spec.Name, Value: v, Allowed: spec.AllowedValues}
			}
			v = strconv.Itoa(n)
		}
		if len(spec.AllowedValues) > 0 && !slices.Contains(spec.AllowedValues, v) {
			return nil, &InvalidChoiceError{Option: spec.Name, Value: v, Allowed: spec.AllowedValues}
		}
		out[i] = v
	}
	return out, nil
}

func collectStore(spec OptionSpec, values []string, st *State) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	values, err := checkValues(spec, values)
	if err != nil {
		return err
	}

	switch spec.Arity.Kind {
	case ArityFlag:
		st.Set(spec.Dest, BoolValue(!spec.Negate))
	case ArityScalar:
		st.Set(spec.Dest, StringValue(values[0]))
	default:
		st.Set(spec.Dest, ListValue(joinValues(values)))
	}
	return nil
}

func collectVarArgs(spec OptionSpec, values []string, st *State) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	values, err := checkValues(spec, values)
	if err != nil {
		return err
	}
	st.appendEntry(spec.Dest, joinValues(values))
	return nil
}

func collectOverride(spec OptionSpec, values []string, st *State) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	key, value := values[0], values[1]
	if !slices.Contains(OverrideKeys, key) {
		return &UnknownOverrideKeyError{Key: key}
	}
	if IsBooleanOverride(key) {
		b, ok := parseBool(value)
		if !ok {
			return &InvalidOverrideValueError{Key: key, Value: value}
		}
		value = strconv.FormatBool(b)
	}

	overrides := OverrideMap{}
	if cur, ok := st.Get(spec.Dest); ok && cur.Kind == KindOverrides {
		maps.Copy(overrides, cur.Overrides)
	}
	overrides[key] = value
	st.Set(spec.Dest, OverridesValue(overrides))
	return nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "yes", "true":
		return true, true
	case "0", "no", "false":
		return false, true
	}
	return false, false
}

func (r *run) ignore(spec OptionSpec, values []string) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	msg := strings.TrimSpace("Ignoring option: --" + spec.Name + " " + strings.Join(values, " "))
	if spec.Warn {
		r.warnings = append(r.warnings, msg)
		r.p.logger.Warn("%s", msg)
		return nil
	}
	r.p.logger.Debug("%s", msg)
	return nil
}
