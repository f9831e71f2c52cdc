package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/paycal/backend/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

// saveSession stores the token and email of a fresh login
func saveSession(resp *client.LoginResponse) error {
	viper.Set("auth.token", resp.Token)
	if resp.User != nil {
		viper.Set("auth.email", resp.User.Email)
	}
	if err := writeConfig(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := saveSession(resp); err != nil {
				return err
			}

			name := email
			if resp.User != nil && resp.User.Name != "" {
				name = resp.User.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if name == "" {
				name = promptInput("Name: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Register(context.Background(), client.RegisterRequest{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err := saveSession(resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Logged in as %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.email", "")

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := apiClient.GetCurrentUser(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), user)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Email:    %s\n", user.Email)
			fmt.Fprintf(out, "Name:     %s\n", user.Name)
			fmt.Fprintf(out, "Premium:  %t\n", user.IsPremium)
			fmt.Fprintf(out, "ID:       %d\n", user.ID)
			return nil
		},
	}
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
