package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads a credential from a terminal without echo. When In
// is not a terminal it falls back to reading one line.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// PromptCredential implements Prompter.
func (p *TerminalPrompter) PromptCredential(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.Out, "Device password: ")
	defer fmt.Fprintln(p.Out)

	fd := int(p.In.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
