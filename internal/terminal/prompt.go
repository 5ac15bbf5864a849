package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers to prompts from an input stream.
type Prompter struct {
	in  *bufio.Reader
	fd  int
	tty bool
	out io.Writer
}

// NewPrompter reads from stdin and writes prompts to stdout.
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		fd:  fd,
		tty: term.IsTerminal(fd),
		out: os.Stdout,
	}
}

// NewPrompterFrom reads from r, never treating it as a terminal.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), fd: -1, out: w}
}

// Line prints prompt and returns the trimmed line typed by the user.
func (p *Prompter) Line(prompt string) (string, error) {
	line, err := p.raw(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret prints prompt and reads a line without echo when attached to a terminal.
// Only the line terminator is removed; surrounding spaces are part of the secret.
func (p *Prompter) Secret(prompt string) (string, error) {
	if !p.tty {
		return p.raw(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// raw prints prompt and returns the next line without its terminator.
func (p *Prompter) raw(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
