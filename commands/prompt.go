package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kisansaarthi/services/validator"

	"golang.org/x/term"
)

// ErrAborted is returned when input ends before a flow completes.
var ErrAborted = errors.New("input closed before the flow completed")

// prompter reads answers line by line. Secrets are read without echo when
// the input is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prompts for a line. An empty answer keeps current.
func (p *prompter) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

// secret prompts for a line that is not echoed on a terminal. Surrounding
// spaces are kept.
func (p *prompter) secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.tty {
		return p.readLine()
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// choose lists opts and accepts a number, a value or a label. With no
// options it falls back to free text.
func (p *prompter) choose(label string, opts []validator.Option, current string) (string, error) {
	if len(opts) == 0 {
		return p.ask(label, current)
	}
	fmt.Fprintf(p.out, "%s:\n", label)
	for i, o := range opts {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label)
	}
	for {
		answer, err := p.ask(fmt.Sprintf("Choose 1-%d", len(opts)), labelOf(opts, current))
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}
		if v, ok := pick(opts, answer); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, "  Please choose one of the listed options")
	}
}

func pick(opts []validator.Option, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(opts) {
			return opts[n-1].Value, true
		}
		return "", false
	}
	for _, o := range opts {
		if strings.EqualFold(o.Value, answer) || strings.EqualFold(o.Label, answer) {
			return o.Value, true
		}
	}
	return "", false
}

func labelOf(opts []validator.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
