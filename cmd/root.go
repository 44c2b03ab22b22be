// Package cmd implements the command-line interface for PagePulse.
// It provides the root command and subcommands for analyzing web pages
// and running the bot and API server.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	cmdanalyze "github.com/jonesrussell/pagepulse/cmd/analyze"
	cmdbot "github.com/jonesrussell/pagepulse/cmd/bot"
	cmdhttpd "github.com/jonesrussell/pagepulse/cmd/httpd"
	cmdreport "github.com/jonesrussell/pagepulse/cmd/report"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the PagePulse CLI.
	rootCmd = &cobra.Command{
		Use:   "pagepulse",
		Short: "Web page speed, SEO, accessibility, and security analyzer",
		Long: `PagePulse analyzes web pages with Google PageSpeed Insights and
direct page inspections, and delivers PDF reports via CLI, HTTP API,
or a Telegram bot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a fresh context
	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pagepulse version %s\n", viper.GetString("app.version"))
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdanalyze.Command())
	rootCmd.AddCommand(cmdreport.Command())
	rootCmd.AddCommand(cmdbot.Command())
	rootCmd.AddCommand(cmdhttpd.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading BEFORE setting defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults (only used if environment variables or config file don't provide values)
	setDefaults()

	// Read config file
	// Config file is optional: configuration can also come from
	// environment variables and defaults.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	// Bind command-line flags to Viper
	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	// Map environment variables to config keys
	if err := bindEnvVars(); err != nil {
		return err
	}

	// Set development logging settings
	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}

// bindEnvVars binds environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"app.debug":         {"APP_DEBUG"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"pagespeed.api_key": {"PAGESPEED_API_KEY"},
		"telegram.token":    {"TELEGRAM_BOT_TOKEN"},
		"report.font_path":  {"PDF_FONT_PATH"},
		"server.address":    {"SERVER_ADDRESS"},
	}

	for key, envVars := range bindings {
		args := append([]string{key}, envVars...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envVars[0], err)
		}
	}

	return nil
}

// setupDevelopmentLogging configures development logging settings based on environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	// Development mode gets console formatting; the log level only
	// changes when debug is explicitly requested.
	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "pagepulse",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	// Server defaults - production safe
	viper.SetDefault("server", map[string]any{
		"address":          ":8080",
		"read_timeout":     "15s",
		"write_timeout":    "5m",
		"idle_timeout":     "60s",
		"security_enabled": true,
	})

	// PageSpeed defaults
	viper.SetDefault("pagespeed", map[string]any{
		"endpoint":         "https://www.googleapis.com/pagespeedonline/v5/runPagespeed",
		"locale":           "uk",
		"timeout":          "60s",
		"max_attempts":     3,
		"retry_base_delay": "2s",
	})

	// Telegram defaults
	viper.SetDefault("telegram", map[string]any{
		"poll_timeout": 60,
		"debug":        false,
	})
}
