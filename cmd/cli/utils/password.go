package utils

import (
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// RequestPassword prompts for password, confirms it, validates strength, and reminds to back it up
func RequestPassword() (string, error) {
	fmt.Println("IMPORTANT: Please ensure you back up your password securely.")
	fmt.Println("If lost, you won't be able to recover your private key.")

	fmt.Print("Enter passphrase to encrypt private key: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	passphrase := string(bytePassword)

	fmt.Print("Confirm passphrase: ")
	byteConfirmation, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation passphrase: %w", err)
	}
	confirmation := string(byteConfirmation)

	if passphrase != confirmation {
		return "", fmt.Errorf("passphrases do not match")
	}

	if len(passphrase) < 12 {
		return "", fmt.Errorf("passphrase too short (minimum 12 characters recommended)")
	}
	if !ContainsAtLeastNSpecial(passphrase, 1) {
		return "", fmt.Errorf("passphrase must contain at least 1 special character")
	}

	return passphrase, nil
}

// ContainsAtLeastNSpecial checks if a string contains at least n special characters
func ContainsAtLeastNSpecial(s string, n int) bool {
	count := 0
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}
