package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// SecretPrompt asks the operator for a secret. source identifies what the
// secret unlocks, the absolute path of a PKCS#12 archive.
type SecretPrompt interface {
	Secret(prompt, source string) (string, error)
}

// SecretPromptFunc adapts a function to SecretPrompt.
type SecretPromptFunc func(prompt, source string) (string, error)

// Secret calls f.
func (f SecretPromptFunc) Secret(prompt, source string) (string, error) {
	return f(prompt, source)
}

// SecretFeedback is implemented by prompts that want to know whether the
// secret they returned was accepted, for example to cache it.
type SecretFeedback interface {
	Accepted(source, secret string)
	Rejected(source string)
}

type terminalPrompt struct {
	in  *os.File
	out io.Writer
}

// TerminalPrompt reads secrets from stdin without echo, writing the prompt
// to stderr. When stdin is not a terminal a plain line is read instead.
func TerminalPrompt() SecretPrompt {
	return &terminalPrompt{in: os.Stdin, out: os.Stderr}
}

func (t *terminalPrompt) Secret(prompt, _ string) (string, error) {
	fmt.Fprint(t.out, prompt)

	fd := int(t.in.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
