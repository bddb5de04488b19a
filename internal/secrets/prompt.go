package secrets

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a password prompt has no terminal to read.
var ErrNoTerminal = errors.New("stdin is not a terminal")

// PromptPassword reads a password from the terminal without echo. The
// prompt goes to w so stdout stays clean for reports.
func PromptPassword(w io.Writer, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for %s password: %w", label, ErrNoTerminal)
	}

	fmt.Fprintf(w, "Password for %s: ", label)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}
