// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package bootstrap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator for values during setup.
type Prompter interface {
	// Ask returns the trimmed answer for label. secret hides the input
	// where the terminal allows it.
	Ask(label string, secret bool) (string, error)

	// Confirm asks a yes/no question; anything but an explicit yes is no.
	Confirm(question string) (bool, error)
}

// LinePrompter reads answers line by line. It works with pipes as well as
// terminals; secrets are read without echo only on a terminal.
type LinePrompter struct {
	in       *bufio.Reader
	out      io.Writer
	secretFD int
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out, secretFD: fd}
}

func (p *LinePrompter) Ask(label string, secret bool) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if secret && p.secretFD >= 0 {
		b, err := term.ReadPassword(p.secretFD)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.readLine()
}

func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// isYes accepts English and German affirmatives.
func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}
