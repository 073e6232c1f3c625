package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dropsearch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		showDefault, _ := cmd.Flags().GetBool("default")
		return printConfig(cmd.OutOrStdout(), cfg, showDefault)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("default", false, "print the commented default config instead")
}

func printConfig(w io.Writer, c config.Config, showDefault bool) error {
	if showDefault {
		_, err := io.WriteString(w, config.DefaultConfigTemplate())
		return err
	}

	out, err := config.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = w.Write(out)
	return err
}
