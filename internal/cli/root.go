package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paycal/backend/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client

	// top-level status works without a session; premium status does not
	statusCmd *cobra.Command
)

var rootCmd = &cobra.Command{
	Use:   "paycal",
	Short: "Paycal CLI - track subscriptions and spending",
	Long: `Paycal CLI provides command-line access to a Paycal server for managing
subscriptions, reading spending analytics and handling the premium plan.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands never talk to the server
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		if cmd == statusCmd || cmd.Name() == "login" || cmd.Name() == "register" || cmd.Name() == "logout" {
			return initClient()
		}
		return initAuthenticatedClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.paycal/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	statusCmd = newStatusCmd()
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(newSubsCmd())
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newPremiumCmd())
}

// configPath is where credentials and settings are written
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".paycal", "config.yaml"), nil
}

func initConfig() {
	path, err := configPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0700)
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PAYCAL")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:5000")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'paycal auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}

func writeConfig() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(path)
}
