package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
)

const maxLineSize = 1024 * 1024

// accessServerMeta lists the OpenVPN Access Server comment metadata that
// is carried into the profile as setenv entries.
var accessServerMeta = []string{"USERNAME", "PROFILE", "AUTOLOGIN"}

const accessServerPrefix = "# OVPN_ACCESS_SERVER_"

// resolve returns name as an absolute path, interpreting relative names
// against the current --cd directory.
func (r *run) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(r.dir, name)
}

// fileIdentity is the key used for include cycle detection.
func fileIdentity(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func (r *run) changeDir(spec OptionSpec, values []string) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	name := strings.Join(values, " ")
	dir := r.resolve(name)
	info, err := os.Stat(dir)
	if err != nil {
		return &EmbedIOError{Option: spec.Name, Filename: name, Err: err}
	}
	if !info.IsDir() {
		return &EmbedIOError{Option: spec.Name, Filename: name, Err: fmt.Errorf("not a directory")}
	}
	r.dir = dir
	return nil
}

// includeConfig reads a configuration file and merges its options into
// st. The file's own option lines are parsed into a fresh state first,
// then its embedded blocks are merged on top.
func (r *run) includeConfig(spec OptionSpec, values []string, st *State, depth int) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	name := values[0]
	path := r.resolve(name)

	if depth >= r.p.maxDepth {
		return &IncludeDepthError{Filename: name, Limit: r.p.maxDepth}
	}
	id := fileIdentity(path)
	if slices.Contains(r.including, id) {
		chain := append(slices.Clone(r.including), id)
		return &IncludeCycleError{Chain: chain}
	}

	if r.configName == "" {
		r.configName = name
	}

	tokens, blocks, err := r.readConfigFile(path)
	if err != nil {
		return &EmbedIOError{Option: spec.Name, Filename: name, Err: err}
	}

	r.including = append(r.including, id)
	defer func() { r.including = r.including[:len(r.including)-1] }()

	nested := NewState()
	if err := r.parseTokens(tokens, nested, depth+1); err != nil {
		return err
	}
	st.Merge(nested, r.p.registry.Accumulates)
	st.Merge(blocks, r.p.registry.Accumulates)
	return nil
}

// readConfigFile splits a configuration file into the option tokens of
// its plain lines and the embedded <tag> blocks, keyed by canonical tag.
func (r *run) readConfigFile(path string) ([]string, *State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var (
		tokens []string
		blocks = NewState()
		tag    string
		buf    []string
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())

		if tag == "" {
			if meta, ok := accessServerSetenv(raw); ok {
				tokens = append(tokens, meta...)
				continue
			}
		}

		line, _, _ := strings.Cut(raw, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if tag != "" {
			buf = append(buf, line)
			if line == "</"+tag+">" {
				key := CanonicalKey(tag)
				text := strings.Join(buf, "\n")
				if r.p.registry.Accumulates(key) {
					blocks.appendBlocks(key, text)
				} else {
					blocks.Set(key, BlobValue(text))
				}
				tag, buf = "", nil
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "<"):
			end := strings.Index(line, ">")
			if end < 2 {
				return nil, nil, fmt.Errorf("malformed embedded block tag %q", line)
			}
			tag = line[1:end]
			buf = []string{line}
		default:
			words, err := splitLine(line)
			if err != nil {
				return nil, nil, err
			}
			if len(words) == 0 {
				continue
			}
			words[0] = "--" + words[0]
			tokens = append(tokens, words...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if tag != "" {
		return nil, nil, &UnterminatedBlockError{Filename: path, Tag: tag}
	}
	return tokens, blocks, nil
}

// splitLine tokenizes one option line with shell quoting rules. An
// unquoted ';' starts a trailing comment. '&', '|', '<' and '>' are plain
// characters of a value.
func splitLine(line string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(escapeOperators(line))
	if err != nil {
		return nil, fmt.Errorf("cannot parse line %q: %w", line, err)
	}
	return words, nil
}

// escapeOperators cuts line at the first unquoted ';' and backslash-escapes
// the unquoted shell operators that go-shellwords would stop at.
func escapeOperators(line string) string {
	var (
		b       strings.Builder
		quote   rune
		escaped bool
	)
	for _, c := range line {
		switch {
		case escaped:
			escaped = false
		case c == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return b.String()
		case strings.ContainsRune("&|<>", c):
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// accessServerSetenv turns "# OVPN_ACCESS_SERVER_KEY=value" metadata
// comments into "--setenv opt KEY value" tokens.
func accessServerSetenv(line string) ([]string, bool) {
	rest, ok := strings.CutPrefix(line, accessServerPrefix)
	if !ok {
		return nil, false
	}
	key, value, _ := strings.Cut(rest, "=")
	key = strings.TrimSpace(key)
	if !slices.Contains(accessServerMeta, key) {
		return nil, false
	}
	tokens := []string{"--setenv", "opt", key}
	if value = strings.TrimSpace(value); value != "" {
		tokens = append(tokens, value)
	}
	return tokens, true
}
