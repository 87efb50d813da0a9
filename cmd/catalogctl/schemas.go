package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heron-db/catalog/catalog"
)

var schemasCatalog string

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas of one catalog, or of every attached catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var schemas []*catalog.Schema
		var err error
		if schemasCatalog == "" {
			schemas = engine.ListAllSchemas()
		} else {
			schemas, err = engine.ListSchemas(sess, schemasCatalog)
		}
		if err != nil {
			return err
		}
		for _, s := range schemas {
			fmt.Printf("%s.%s\n", s.Catalog.Name, s.Name)
		}
		return nil
	},
}

func init() {
	schemasCmd.Flags().StringVar(&schemasCatalog, "catalog", "", "restrict to one catalog (default: every attached catalog)")
}
