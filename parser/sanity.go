package parser

// mandatoryKeys must be present in every importable profile.
var mandatoryKeys = []string{"client", "remote", "ca"}

// SanityCheck verifies that the mandatory options are set. All missing
// options are reported together.
func SanityCheck(st *State) error {
	var missing []string
	for _, key := range mandatoryKeys {
		v, ok := st.Get(key)
		if !ok || !v.Present() {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &MissingMandatoryOptionsError{Missing: missing}
	}
	return nil
}
