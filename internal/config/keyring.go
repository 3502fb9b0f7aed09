package config

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name in the OS keychain
	keyringService = "pagertrace"

	// keyringTokenItem is the key for the PagerDuty API token
	keyringTokenItem = "pagerduty-api-token"
)

// SaveKeychainToken stores the API token in the OS keychain:
// Keychain Access on macOS, Credential Manager on Windows, Secret
// Service on Linux (requires libsecret).
func SaveKeychainToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringTokenItem, token); err != nil {
		return fmt.Errorf("save token to OS keychain: %w", err)
	}
	return nil
}

// KeychainToken retrieves the API token from the OS keychain. An unset
// token returns ("", nil); that is not an error.
func KeychainToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringTokenItem)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token from OS keychain: %w", err)
	}
	return token, nil
}

// DeleteKeychainToken removes the API token from the OS keychain.
// Deleting an absent token is a no-op.
func DeleteKeychainToken() error {
	err := keyring.Delete(keyringService, keyringTokenItem)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete token from OS keychain: %w", err)
	}
	return nil
}
