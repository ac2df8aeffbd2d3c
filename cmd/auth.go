package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/pkg/genius"
)

var authToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Genius",
	Long: `Authenticate with Genius to use the official API.

Without a token verses reads the public web API, which is enough for every
command. With a token, songs and artists are fetched from api.genius.com.

This command will guide you through the OAuth2 authorization flow:
1. You'll be prompted for your client id, secret and redirect URI
2. A browser URL will be provided for you to authorize the application
3. Paste the URL you were redirected to, and the token is saved to your
   config file

Use --token to store a client access token from the Genius API dashboard
instead. You can create an API client at: https://genius.com/api-clients`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().StringVar(&authToken, "token", "", "Store this access token without the OAuth2 flow")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if authToken != "" {
		cfg.Genius.AccessToken = strings.TrimSpace(authToken)
		return saveToken(cfg)
	}

	fmt.Println("Genius Authentication")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println("You can create an API client at: https://genius.com/api-clients")
	fmt.Println()

	// Check if we already have credentials
	if cfg.Genius.ClientID != "" && cfg.Genius.ClientSecret != "" {
		fmt.Printf("Found existing client credentials.\n")
		fmt.Printf("Client ID: %s\n", cfg.Genius.ClientID)
		fmt.Print("\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.Genius.ClientID = ""
			cfg.Genius.ClientSecret = ""
			cfg.Genius.RedirectURI = ""
		}
	}

	prompts := []struct {
		label string
		value *string
	}{
		{"Client ID", &cfg.Genius.ClientID},
		{"Client Secret", &cfg.Genius.ClientSecret},
		{"Redirect URI", &cfg.Genius.RedirectURI},
	}
	for _, p := range prompts {
		if *p.value != "" {
			continue
		}
		fmt.Printf("Enter your %s: ", p.label)
		value, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", strings.ToLower(p.label), err)
		}
		*p.value = strings.TrimSpace(value)
	}

	if cfg.Genius.ClientID == "" || cfg.Genius.ClientSecret == "" || cfg.Genius.RedirectURI == "" {
		return fmt.Errorf("client id, secret and redirect URI are required")
	}

	client, err := genius.NewClient(cfg.ClientConfig(nil))
	if err != nil {
		return fmt.Errorf("failed to create genius client: %w", err)
	}

	state := uuid.NewString()
	authURL, err := client.Auth().AuthorizeURL(state, "me")
	if err != nil {
		return fmt.Errorf("failed to build authorization URL: %w", err)
	}

	fmt.Println("\nPlease visit this URL to authorize verses:")
	fmt.Printf("\n  %s\n\n", authURL)
	fmt.Print("Paste the URL you were redirected to: ")
	redirected, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read redirect URL: %w", err)
	}

	code, err := genius.ParseRedirect(redirected, state)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Println("Retrieving access token...")
	token, err := client.Auth().ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	cfg.Genius.AccessToken = token.AccessToken
	return saveToken(cfg)
}

func saveToken(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n✓ Authentication successful!\n")
	fmt.Printf("✓ Access token saved to %s/config.yaml\n", config.GetConfigDir())
	return nil
}
