package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pagertrace/pagertrace/internal/config"
	"github.com/pagertrace/pagertrace/internal/errors"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the PagerDuty API token in the OS keychain",
	Long: `Prompt for a PagerDuty REST API token and store it in the OS keychain
(Keychain Access on macOS, Credential Manager on Windows, Secret Service on
Linux). Once stored, the token no longer needs to be in the environment.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the PagerDuty API token from the OS keychain",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Print("PagerDuty API token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errors.InvalidInputf("no token entered")
	}

	if err := config.SaveKeychainToken(token); err != nil {
		return err
	}

	fmt.Println("Token saved to OS keychain")
	fmt.Println("Run 'pagertrace incidents' to verify access")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.DeleteKeychainToken(); err != nil {
		return err
	}
	fmt.Println("Token removed from OS keychain")
	return nil
}
