package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourorg/calcctl/internal/config"
)

type loginOptions struct {
	apiKey    string
	serverURL string
}

func newAuthLoginCmd(globals *globalOptions) *cobra.Command {
	opts := &loginOptions{
		serverURL: config.DefaultServerURL(),
	}

	cmd := &cobra.Command{
		Use:           "login",
		Short:         "Store a calc service API key securely",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthLogin(cmd, globals, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key to store (prompted if omitted)")
	cmd.Flags().StringVar(&opts.serverURL, "server-url", opts.serverURL, "Base URL of the calc service for the profile")

	return cmd
}

func runAuthLogin(cmd *cobra.Command, globals *globalOptions, opts *loginOptions) error {
	apiKey := strings.TrimSpace(opts.apiKey)
	if apiKey == "" {
		read, err := promptForAPIKey(cmd)
		if err != nil {
			return err
		}
		apiKey = read
	}
	if apiKey == "" {
		return errors.New("api key cannot be empty")
	}

	serverURL := strings.TrimSpace(opts.serverURL)
	if serverURL == "" {
		serverURL = config.DefaultServerURL()
	}

	if err := config.SaveAPIKey(globals.profile, apiKey, serverURL); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	if _, err := fmt.Fprintf(
		cmd.OutOrStdout(),
		"Saved credentials for profile %q (server %s)\n",
		globals.profile,
		serverURL,
	); err != nil {
		return fmt.Errorf("write confirmation: %w", err)
	}
	return nil
}

func promptForAPIKey(cmd *cobra.Command) (string, error) {
	reader := cmd.InOrStdin()

	if f, ok := reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), "API key: "); err != nil {
			return "", fmt.Errorf("prompt api key: %w", err)
		}
		data, err := term.ReadPassword(int(f.Fd()))
		if _, ferr := fmt.Fprintln(cmd.OutOrStdout()); ferr != nil {
			return "", fmt.Errorf("prompt api key: %w", ferr)
		}
		if err != nil {
			return "", fmt.Errorf("read api key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
