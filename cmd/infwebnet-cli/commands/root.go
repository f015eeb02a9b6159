package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"infwebnet-backend/lib/catalog/store"
	"infwebnet-backend/lib/configutil"
	configsqlite "infwebnet-backend/lib/configutil/sqlite"
	"infwebnet-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "infwebnet-cli",
	Short: "infwebnet-cli ingests platform game catalogs and cross-references them with INFwebNET users.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	Database  configsqlite.Struct `json:"database"`
	OutputDir string              `json:"output_dir"`
	BaseUrl   string              `json:"base_url"`
	UsersFile string              `json:"users_file"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg
}

func openStore(cfg Config) (store.Store, *sql.DB) {
	db, err := cfg.Database.OpenDB(store.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	return store.New(db), db
}
