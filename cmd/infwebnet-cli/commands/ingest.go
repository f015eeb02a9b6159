package commands

import (
	"context"
	"log/slog"

	"infwebnet-backend/lib/scrapers/wiki"
	"infwebnet-backend/lib/serviceutil"
	"infwebnet-backend/lib/telemetry"
	"infwebnet-backend/lib/users"
	"infwebnet-backend/services/ingest"

	"github.com/spf13/cobra"
)

var verbose bool

func init() {
	ingestCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run the full catalog ingestion pipeline over the configured user directory.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		ctx := cmd.Context()

		cfg := readConfig()

		tel, err := telemetry.SetupFromEnv(ctx, "infwebnet-cli")
		if err == nil {
			defer tel.Shutdown(context.Background())
			telemetry.InstrumentPerfStats(ctx)
		} else {
			slog.Debug("running without telemetry", "err", err)
		}

		userList, err := users.Load(cfg.UsersFile)
		if err != nil {
			serviceutil.Fatal("failed to load user directory", err)
		}

		st, db := openStore(cfg)
		defer db.Close()

		pipeline := ingest.New(ingest.Options{
			Client: wiki.NewClient(wiki.ClientOptions{
				BaseUrl:   cfg.BaseUrl,
				OutputDir: cfg.OutputDir,
			}),
			Store:     st,
			OutputDir: cfg.OutputDir,
		})

		result, err := pipeline.Run(ctx, userList)
		if err != nil {
			serviceutil.Fatal("pipeline failed", err)
		}

		slog.Info("ingestion finished",
			"platforms", len(result.Platforms),
			"pages", len(result.Pages),
			"catalog_entries", len(result.Catalog),
			"urls", len(result.Connections.Urls),
			"emails", len(result.Connections.Emails),
		)
	},
}
