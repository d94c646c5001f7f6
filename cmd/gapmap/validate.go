package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/gapmap/internal/schemas"
	rootschemas "github.com/jonathan/gapmap/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved collaborator response against its JSON Schema",
	Long: fmt.Sprintf(`Validate a JSON file against one of the embedded response schemas:
%v`, rootschemas.Names),
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema name, e.g. "+rootschemas.Profiles)
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := schemas.ValidateFile(validateSchema, validateJSON); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Validation failed")
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
