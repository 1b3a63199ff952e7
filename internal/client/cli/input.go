package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam; the default reads from the terminal without
// echo when stdin is a TTY.
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var password string
		_, err := fmt.Scanln(&password)
		return password, err
	}

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
