package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/lexbot/internal/service/installer"
	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Interactive setup wizard",
	Long:  `Asks which transports to enable and writes the answers to <runtime>/.env.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		// answers take precedence over whatever the shell already exports
		for key, value := range state.EnvVars {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}

		if err := writeRuntime(cmd.OutOrStdout(), installForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "LexBot is configured. Run 'lexbot start' to chat.")
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "overwrite existing files")
	rootCmd.AddCommand(installCmd)
}
