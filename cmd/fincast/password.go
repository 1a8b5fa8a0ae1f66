package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"fincast/internal/services/storage"
)

// PasswordEnv supplies the data directory password non-interactively
const PasswordEnv = "FINCAST_PASSWORD"

var errNoTerminal = errors.New("password required: set " + PasswordEnv + " or run from a terminal")

// readPassword takes the password from the environment or prompts for it
// without echo
func readPassword(prompt string) (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoTerminal
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// readNewPassword prompts twice and requires both entries to match
func readNewPassword() (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}

	pw, err := readPassword("New password: ")
	if err != nil {
		return "", err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

// unlock opens an encrypted data directory, prompting for its password
func unlock(store *storage.Storage) error {
	if !store.IsEncrypted() || store.IsUnlocked() {
		return nil
	}
	pw, err := readPassword("Data directory password: ")
	if err != nil {
		return err
	}
	return store.Unlock(pw)
}
