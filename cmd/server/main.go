package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/janhq/grokart/internal/interfaces/mcp"
)

var (
	transportFlag  string
	configFileFlag string
	httpPortFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "grokart",
	Short: "MCP server exposing xAI image generation as the generate_image tool",
	Long: `grokart serves the Model Context Protocol over stdio (default) or streamable HTTP
and forwards generate_image calls to the xAI image generation API.

XAI_API_KEY must be set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(flagOverrides(cmd))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mcp.ServerName, mcp.ServerVersion)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration as YAML with the API key redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagOverrides(cmd))
		if err != nil {
			return err
		}
		cfg.XAIAPIKey = redact(cfg.XAIAPIKey)

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&transportFlag, "transport", "", "transport to serve on: stdio or http (overrides GROKART_TRANSPORT)")
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "YAML config file (overrides GROKART_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&httpPortFlag, "http-port", "", "port for the http transport (overrides GROKART_HTTP_PORT)")

	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("grokart failed")
		os.Exit(1)
	}
}

// flagOverrides maps explicitly set flags onto the environment keys they replace.
func flagOverrides(cmd *cobra.Command) map[string]string {
	overrides := map[string]string{}
	flags := cmd.Flags()
	if flags.Changed("transport") {
		overrides["GROKART_TRANSPORT"] = transportFlag
	}
	if flags.Changed("config") {
		overrides["GROKART_CONFIG_FILE"] = configFileFlag
	}
	if flags.Changed("http-port") {
		overrides["GROKART_HTTP_PORT"] = httpPortFlag
	}
	return overrides
}

func redact(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}
