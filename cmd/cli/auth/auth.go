package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/davemarr/asset-inventory/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd())
}

// loginCmd authenticates against the API and stores the JWT locally.
func loginCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the asset inventory API",
		Long:  "Authenticate with the asset inventory API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}

			payload, err := json.Marshal(map[string]string{
				"username": username,
				"password": password,
			})
			if err != nil {
				return err
			}

			resp, err := http.Post(config.APIURL()+"/api/auth/login", "application/json", bytes.NewReader(payload))
			if err != nil {
				return fmt.Errorf("login request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("login failed (%d): %s", resp.StatusCode, bytes.TrimSpace(body))
			}

			var out struct {
				Token string `json:"token"`
				User  struct {
					Username string `json:"username"`
					Role     string `json:"role"`
				} `json:"user"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("decode login response: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Printf("Logged in as %s (%s). Token stored locally.\n", out.User.Username, out.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password for the account")

	return cmd
}
