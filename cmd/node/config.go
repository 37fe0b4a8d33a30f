package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Morgane2t/decent-workshop-4/pkg/config"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/security"
)

// loadPasswordFromFile reads the BadgerDB password from a file
func loadPasswordFromFile(filePath string) error {
	passwordBytes, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read password file %s: %w", filePath, err)
	}

	password := strings.TrimSpace(string(passwordBytes))
	if password == "" {
		security.ZeroBytes(passwordBytes)
		return fmt.Errorf("password file %s is empty", filePath)
	}

	// Store a copy: ZeroString wipes the backing array in place, and the
	// config must keep a live value.
	config.SetBadgerPassword(strings.Clone(password))
	security.ZeroBytes(passwordBytes)
	security.ZeroString(&password)

	return nil
}

// Prompt user for sensitive configuration values
func promptForSensitiveCredentials() {
	fmt.Println("WARNING: Please back up your Badger DB password in a secure location.")
	fmt.Println("If you lose this password, you will permanently lose access to your data!")

	var badgerPass []byte
	var confirmPass []byte
	var err error

	defer func() {
		security.ZeroBytes(badgerPass)
		security.ZeroBytes(confirmPass)
	}()

	for {
		fmt.Print("Enter Badger DB password: ")
		badgerPass, err = term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			logger.Fatal("Failed to read badger password", err)
		}
		fmt.Println()

		if len(badgerPass) == 0 {
			fmt.Println("Password cannot be empty. Please try again.")
			continue
		}

		fmt.Print("Confirm Badger DB password: ")
		confirmPass, err = term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			logger.Fatal("Failed to read confirmation password", err)
		}
		fmt.Println()

		if string(badgerPass) != string(confirmPass) {
			fmt.Println("Passwords do not match. Please try again.")
			continue
		}

		break
	}

	passwordStr := string(badgerPass)
	maskedPassword := maskString(passwordStr)
	fmt.Printf("Password set: %s\n", maskedPassword)
	config.SetBadgerPassword(strings.Clone(passwordStr))
	security.ZeroString(&passwordStr)
	checkRequiredConfigValues()
}

// maskString shows the first and last character of a string, replacing the middle with asterisks
func maskString(s string) string {
	if len(s) <= 2 {
		return s // Too short to mask
	}

	masked := s[0:1]
	for i := 0; i < len(s)-2; i++ {
		masked += "*"
	}
	masked += s[len(s)-1:]

	return masked
}

// Check required configuration values are present
func checkRequiredConfigValues() {
	if config.BadgerPassword() == "" {
		logger.Fatal("Badger password is required", nil)
	}
}
