package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/advisory-cli/internal/export"
	"github.com/sells-group/advisory-cli/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <client-id>",
	Short: "Export a client's net-worth statement to xlsx",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		if _, err := st.GetClient(cmd.Context(), clientID); err != nil {
			return err
		}

		// A missing or malformed record exports as an all-zero statement,
		// same as the dashboard renders it.
		var doc *model.NetWorthDoc
		rec, err := st.GetRecord(cmd.Context(), clientID, "netWorth")
		if err != nil {
			return err
		}
		if rec != nil {
			var d model.NetWorthDoc
			if err := json.Unmarshal(rec.Data, &d); err != nil {
				zap.L().Warn("export: malformed net-worth record", zap.Error(err))
			} else {
				doc = &d
			}
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("networth-%s.xlsx", clientID)
		}
		if err := export.WriteNetWorthXLSX(doc, cat, out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default networth-<client-id>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
