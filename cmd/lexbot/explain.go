package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/lexbot/internal/config"
	"github.com/sandevgo/lexbot/internal/service/ui"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <query>",
	Short: "Show how a query scores against the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		m, normalizer, err := newMatcher(ctx, appCfg)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s %q\n", ui.TitleStyle.UnsetMarginBottom().Render("terms"), normalizer.Tokens(query))
		fmt.Fprintf(out, "%s %.2f (a match must score above it)\n\n", ui.TitleStyle.UnsetMarginBottom().Render("threshold"), m.Threshold())

		_, best, ok := m.Match(query)
		for i, s := range m.Rank(query) {
			line := fmt.Sprintf("%s  %s", ui.ScoreStyle.Render(fmt.Sprintf("%.4f", s.Value)), s.Question)
			if i == 0 && ok && s.Value == best {
				line += "  " + ui.HitStyle.Render("<- answer")
			}
			fmt.Fprintln(out, line)
		}
		if !ok {
			fmt.Fprintln(out, "\n"+ui.MetaStyle.Render("no match, the fallback reply would be used"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
