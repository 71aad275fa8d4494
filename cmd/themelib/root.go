package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appVersion = "0.1.0-dev"

// defaultDBPath is where init puts the workspace database.
const defaultDBPath = ".themelib/library.db"

var rootCmd = &cobra.Command{
	Use:   "themelib",
	Short: "Design token library: ingest, query, and export design themes",
	Long: `themelib manages a library of design themes and components.

It ingests design token exports (DTCG, flat, Style Dictionary), stores them
in a local SQLite database, and exports packages of stylesheets, token data,
Tailwind config, and AI context documents. It can also serve the library
over MCP for editor assistants.`,

	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command, printing errors to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", defaultDBPath, "path to the library database")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

// initViper loads .themelib.yaml from the working directory when present
// and binds THEMELIB_* environment variables. Flags override both.
func initViper() {
	viper.SetConfigName(".themelib")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("THEMELIB")
	viper.AutomaticEnv()

	viper.SetDefault("db", defaultDBPath)
	viper.SetDefault("project_name", "")
	viper.SetDefault("version", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

func dbPath() string {
	return viper.GetString("db")
}
