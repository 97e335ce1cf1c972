package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	apiURL  string
	verbose bool

	testEmail string
	testItem  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "relay-cli",
	Short: "Purchase relay CLI - webhook relay operations tool",
	Long: `Relay CLI provides command-line access to the purchase email relay.
Probe service health and post synthetic payment events from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
		if verbose {
			fmt.Printf("API URL: %s\n", apiURL)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.relay-cli.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Relay API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))

	sendTestCmd.Flags().StringVar(&testEmail, "email", "buyer@example.com", "buyer email address")
	sendTestCmd.Flags().StringVar(&testItem, "item", "", "purchased item name (omit to exercise the default)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(sendTestCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".relay-cli")
	}

	viper.SetEnvPrefix("RELAY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Printf("Using config file: %s\n", viper.ConfigFileUsed())
	}

	if apiURL == "" {
		apiURL = viper.GetString("api_url")
	}
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check relay service health",
	Long:  "Probe the relay's health endpoint and print its status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &RelayClient{BaseURL: apiURL}
		return client.Health()
	},
}

var sendTestCmd = &cobra.Command{
	Use:   "send-test",
	Short: "Post a synthetic payment-capture event",
	Long:  "Post a synthetic PAYMENT.CAPTURE.COMPLETED event to the webhook endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &RelayClient{BaseURL: apiURL}
		return client.SendTest(testEmail, testItem)
	},
}
