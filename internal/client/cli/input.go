package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// prompter reads answers from in and writes prompts to out. When tty is set
// secrets are read from that terminal without echo.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty *os.File
}

// text prints label and reads one trimmed line. A partial last line before
// EOF is returned as is.
func (p *prompter) text(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) secret(label string) (string, error) {
	// typed-ahead lines already sit in the reader and must be consumed first
	if p.tty == nil || p.in.Buffered() > 0 {
		return p.text(label)
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(int(p.tty.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}
