package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer a single message and exit",
	Example: `  lexbot ask "tell me a joke"
  lexbot ask scrape https://example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.db.Close()

		ex := a.chat.Handle(ctx, chat.Message{
			SessionID: askSession,
			User:      core.GuestUser,
			Text:      strings.Join(args, " "),
			Transport: "ask",
		})

		fmt.Fprintln(cmd.OutOrStdout(), ex.Response)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "cli-ask", "conversation session id")
	rootCmd.AddCommand(askCmd)
}
