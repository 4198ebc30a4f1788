package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored Anthropic API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Prompt for the API key and store it",
	Long: `Prompts for the API key without echo and stores it in the configured
store. ANTHROPIC_API_KEY, when set, still takes precedence.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		key, err := a.console().ReadSecret("Anthropic API key: ", os.Stdin)
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("no key entered")
		}
		if err := a.store.SetAPIKey(cmd.Context(), key); err != nil {
			return fmt.Errorf("save key: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "API key saved")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
}
