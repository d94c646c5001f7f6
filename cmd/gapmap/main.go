// Package main provides the gapmap CLI: the collaborator HTTP service and a
// terminal client that runs one skill-gap session end to end.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/gapmap/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gapmap",
	Short: "Skill gap analysis between a resume and a target role",
	Long: `gapmap compares the skills in a resume with those asked for by current job
postings for a domain, then suggests learning resources for the missing skills
and professionals to connect with.

Configuration is read from gapmap.yaml (or --config), GAPMAP_* environment
variables and flags, in increasing precedence. A .env file is loaded first.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
}

// loadConfig merges the config file, environment and the command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
