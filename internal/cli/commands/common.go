package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"golang.org/x/term"

	"github.com/schedulr-app/schedulr/internal/cli/validate"
)

// userProfile is the subset of the user object the CLI displays. The session
// core treats the user as opaque; only display code decodes fields.
type userProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func decodeUser(raw json.RawMessage) userProfile {
	var u userProfile
	// Best effort: an undecodable user just displays empty fields
	_ = json.Unmarshal(raw, &u)
	return u
}

// promptPassword reads a password without echo. Fails in non-interactive mode
// so scripts get a clear error instead of hanging.
func promptPassword(out io.Writer, label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("%s is required in non-interactive mode", label)
	}

	fmt.Fprintf(out, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(out) // New line after password input
	return string(bytePassword), nil
}

// reportValidation prints field-level validation errors next to the form
// input they belong to. Validation failures never become toasts.
func reportValidation(out io.Writer, err error) bool {
	var fields validate.FieldErrors
	if !errors.As(err, &fields) {
		return false
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Please fix the following fields:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", name, fields[name])
	}
	return true
}
