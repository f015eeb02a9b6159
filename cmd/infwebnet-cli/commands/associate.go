package commands

import (
	"os"
	"path/filepath"

	"infwebnet-backend/lib/catalog"
	"infwebnet-backend/lib/serviceutil"
	"infwebnet-backend/lib/telemetry"
	"infwebnet-backend/lib/users"
	"infwebnet-backend/services/ingest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(associateCmd)
}

var associateCmd = &cobra.Command{
	Use:   "associate",
	Short: "Cross-reference user claims against the last exported catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(false)

		cfg := readConfig()

		userList, err := users.Load(cfg.UsersFile)
		if err != nil {
			serviceutil.Fatal("failed to load user directory", err)
		}

		entries, err := catalog.LoadExport(
			filepath.Join(cfg.OutputDir, ingest.CatalogFile),
		)
		if err != nil {
			serviceutil.Fatal("failed to load catalog export", err)
		}

		associations := catalog.Associate(userList, entries)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Usuário", "Jogo", "Plataforma"})
		for _, u := range userList {
			for _, a := range associations[u.ID] {
				t.AppendRow(table.Row{u.ID, a.Game, a.Platform})
			}
		}
		t.Render()
	},
}
