package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"infwebnet-backend/lib/catalog/store"
	"infwebnet-backend/lib/serviceutil"
	"infwebnet-backend/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <game name>",
	Short: "List users whose registered games contain the given name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(false)
		ctx := cmd.Context()

		cfg := readConfig()
		st, db := openStore(cfg)
		defer db.Close()

		game := strings.Join(args, " ")
		found, err := st.UsersByGame(ctx, game)
		if errors.Is(err, store.ErrEmptyQuery) {
			fmt.Fprintln(os.Stderr, "game name must not be empty")
			os.Exit(1)
		}
		if err != nil {
			serviceutil.Fatal("failed to query users", err)
		}

		if len(found) == 0 {
			fmt.Printf("no users registered %q\n", game)
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Nome", "Sobrenome"})
		for _, u := range found {
			t.AppendRow(table.Row{u.FirstName, u.LastName})
		}
		t.Render()
	},
}
