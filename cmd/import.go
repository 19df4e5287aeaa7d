package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/advisory-cli/internal/model"
)

var importCompleted bool

var importCmd = &cobra.Command{
	Use:   "import <client-id> <module> <file.json>",
	Short: "Import a form document for a client module",
	Long:  "Reads a JSON form document from file and upserts it as the client's record for the given module. The first import of a module flips its completion flag.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, module, path := args[0], model.ModuleKey(args[1]), args[2]

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if cat.Module(module) == nil {
			return eris.Errorf("unknown module %q (see catalog)", module)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "read %s", path)
		}

		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.GetClient(cmd.Context(), clientID); err != nil {
			return err
		}

		rec, err := st.UpsertRecord(cmd.Context(), clientID, module, data, importCompleted)
		if err != nil {
			return eris.Wrap(err, "upsert record")
		}

		zap.L().Info("record imported",
			zap.String("client_id", clientID),
			zap.String("module", string(module)),
			zap.Bool("completed", rec.IsCompleted),
		)
		fmt.Printf("imported %s for client %s\n", module, clientID)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importCompleted, "completed", true, "mark the form as completed")
	rootCmd.AddCommand(importCmd)
}
