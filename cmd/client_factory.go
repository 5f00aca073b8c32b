package cmd

import (
	"errors"
	"fmt"

	"github.com/yourorg/calcctl/internal/calcapi"
	"github.com/yourorg/calcctl/internal/config"
)

var clientFactory = defaultClientFactory

func defaultClientFactory(profile string) (*calcapi.Client, error) {
	apiKey, serverURL, err := config.LoadCredentials(profile)
	if errors.Is(err, config.ErrNoCredentials) {
		// Servers without an API key accept anonymous callers.
		serverURL, err = config.LoadServerURL(profile)
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return calcapi.NewClient(calcapi.ClientConfig{
		APIKey:  apiKey,
		BaseURL: serverURL,
	}), nil
}

func buildClient(profile string) (*calcapi.Client, error) {
	return clientFactory(profile)
}
