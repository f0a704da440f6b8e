package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/ui"
	"github.com/sandevgo/lexbot/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	historySession  string
	historyLimit    int
	historySessions bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversation log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.db.Close()

		repo := sqlite.NewConversationRepo(a.db)
		out := cmd.OutOrStdout()

		if historySessions {
			sessions, err := repo.Sessions(ctx)
			if err != nil {
				return err
			}
			for _, id := range sessions {
				fmt.Fprintln(out, id)
			}
			return nil
		}

		exchanges, err := repo.List(ctx, historySession, historyLimit)
		if err != nil {
			return err
		}

		if len(exchanges) == 0 {
			fmt.Fprintln(out, ui.MetaStyle.Render("no conversation yet"))
			return nil
		}
		for _, ex := range exchanges {
			fmt.Fprintf(out, "%s\n%s > %s\n%s > %s\n\n",
				ui.MetaStyle.Render(fmt.Sprintf("#%d %s [%s] %s", ex.ID, ex.CreatedAt.Local().Format("2006-01-02 15:04:05"), ex.SessionID, ex.Kind)),
				ui.UserStyle.Render(ex.User), ex.Input,
				ui.BotStyle.Render(core.BotName), ex.Response,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historySession, "session", "s", "", "only this session (default all)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "most recent exchanges to show, 0 for all")
	historyCmd.Flags().BoolVar(&historySessions, "sessions", false, "list session ids, most recent first")
	rootCmd.AddCommand(historyCmd)
}
