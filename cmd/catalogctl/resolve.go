package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heron-db/catalog/catalog"
)

var (
	resolveKind    string
	resolveCatalog string
	resolveSchema  string
	resolveIfExist bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a qualified name against the session's search path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := catalog.ParseEntryKind(resolveKind)
		if !ok {
			return fmt.Errorf("unknown entry kind: %s", resolveKind)
		}

		tx := catalog.NewTxnState()
		defer tx.Commit()

		entry, err := engine.ResolveEntry(tx, sess, kind, resolveCatalog, resolveSchema, args[0], resolveIfExist)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Println("not found (if-exists)")
			return nil
		}
		fmt.Printf("%s.%s.%s [%s]\n", entry.Schema.Catalog.Name, entry.Schema.Name, entry.Name, entry.Kind)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveKind, "kind", "Table", "entry kind (Table, View, \"Scalar Function\", ...)")
	resolveCmd.Flags().StringVar(&resolveCatalog, "catalog", catalog.InvalidCatalog, "explicit catalog qualifier")
	resolveCmd.Flags().StringVar(&resolveSchema, "schema", catalog.InvalidSchema, "explicit schema qualifier")
	resolveCmd.Flags().BoolVar(&resolveIfExist, "if-exists", false, "return without error if absent")
}
