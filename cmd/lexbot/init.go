package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sandevgo/lexbot/configs"
	"github.com/sandevgo/lexbot/internal/config"
	"github.com/sandevgo/lexbot/pkg/env"
	"github.com/spf13/cobra"
)

var initForce bool

// envFile is what gets written to <runtime>/.env.
type envFile struct {
	App      config.AppConfig
	Scraper  config.ScraperConfig
	HTTP     config.HTTPConfig
	Telegram *config.TelegramConfig
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the runtime directory with a default .env and knowledge base",
	Long: `Writes <runtime>/.env from the current environment and defaults, and copies
the built-in knowledge base next to it so it can be edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := writeRuntime(cmd.OutOrStdout(), initForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'lexbot start' to chat.")
		return nil
	},
}

func writeRuntime(out io.Writer, force bool) error {
	runtimePath := config.GetRuntimePath()
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	var file envFile
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	scrapeCfg, err := config.LoadScraperConfig()
	if err != nil {
		return err
	}
	httpCfg, err := config.LoadHTTPConfig()
	if err != nil {
		return err
	}
	if appCfg.IsTelegramSelected() {
		if file.Telegram, err = config.LoadTelegramConfig(); err != nil {
			return err
		}
	}

	// the runtime path is where the file lives, not part of it
	appCfg.RuntimePath = ""
	if appCfg.KnowledgePath == "" {
		appCfg.KnowledgePath = configs.KnowledgeFile
	}
	file.App, file.Scraper, file.HTTP = *appCfg, *scrapeCfg, *httpCfg

	content, err := env.MarshalEnv(file)
	if err != nil {
		return err
	}

	envPath := filepath.Join(runtimePath, ".env")
	if err := writeFile(envPath, []byte(content), 0600, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", envPath)

	kb, err := configs.FS.ReadFile(configs.KnowledgeFile)
	if err != nil {
		return err
	}
	kbPath := filepath.Join(runtimePath, configs.KnowledgeFile)
	if err := writeFile(kbPath, kb, 0644, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", kbPath)

	return nil
}

func writeFile(path string, data []byte, perm fs.FileMode, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
