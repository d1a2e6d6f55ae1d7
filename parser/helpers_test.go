package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type recordingLogger struct {
	debug []string
	warn  []string
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(msg, args...))
}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Warn(msg string, args ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(msg, args...))
}

func (l *recordingLogger) Error(string, ...interface{}) {}

// newTestParser returns a parser rooted at dir that fails the test if it
// ever prompts for a passphrase.
func newTestParser(t *testing.T, dir string, opts ...Option) *Parser {
	t.Helper()
	noPrompt := SecretPromptFunc(func(prompt, source string) (string, error) {
		t.Errorf("unexpected passphrase prompt for %s", source)
		return "", fmt.Errorf("no prompt in tests")
	})
	base := []Option{WithWorkDir(dir), WithLogger(&recordingLogger{}), WithPrompt(noPrompt)}
	return New(append(base, opts...)...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
