package parser

import (
	"bufio"
	"os"
	"strings"
)

var filenameCleaner = strings.NewReplacer(`"`, "", "'", "", `\`, "")

// normalizeFilename joins filename tokens and strips quoting.
func normalizeFilename(tokens []string) string {
	return filenameCleaner.Replace(strings.Join(tokens, " "))
}

// embedBlock wraps the lines of a file in a <tag> block, with trailing
// whitespace removed from every line.
func embedBlock(tag, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("<" + tag + ">\n")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		b.WriteString(strings.TrimRight(scanner.Text(), " \t\r\v\f"))
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	b.WriteString("</" + tag + ">")
	return b.String(), nil
}

func (r *run) embedFile(spec OptionSpec, values []string, st *State) error {
	if len(values) == 0 && spec.AllowEmptyFile {
		st.Set(spec.Dest, StringValue(""))
		return nil
	}
	if len(values) == 0 {
		return &ArityError{Option: spec.Name, Arity: AtLeast(1), Got: 0}
	}
	if err := checkArity(spec, values); err != nil {
		return err
	}
	return r.embedInto(spec, normalizeFilename(values), st)
}

// embedTLSAuth is embedFile where a trailing "0" or "1" selects the key
// direction.
func (r *run) embedTLSAuth(spec OptionSpec, values []string, st *State) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	var direction string
	if last := values[len(values)-1]; last == "0" || last == "1" {
		direction = last
		values = values[:len(values)-1]
	}
	if len(values) == 0 {
		return &ArityError{Option: spec.Name, Arity: AtLeast(1), Got: 0}
	}
	if err := r.embedInto(spec, normalizeFilename(values), st); err != nil {
		return err
	}
	if direction != "" {
		st.Set("key_direction", ListValue(direction))
	}
	return nil
}

func (r *run) embedInto(spec OptionSpec, filename string, st *State) error {
	block, err := embedBlock(spec.tag(), r.resolve(filename))
	if err != nil {
		return &EmbedIOError{Option: spec.Name, Filename: filename, Err: err}
	}
	st.Set(spec.Dest, StringValue(block))
	return nil
}
