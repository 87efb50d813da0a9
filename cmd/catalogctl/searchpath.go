package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heron-db/catalog/session"
)

var searchPathCmd = &cobra.Command{
	Use:   "search-path",
	Short: "Get or set the session's search path",
}

var searchPathGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the session's current search path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, site := range engine.GetSearchPath(sess) {
			fmt.Printf("%s.%s\n", site.Catalog, site.Schema)
		}
		return nil
	},
}

var searchPathSetCmd = &cobra.Command{
	Use:   "set <catalog.schema>...",
	Short: "Replace the session's search path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := make([]session.Site, len(args))
		for i, arg := range args {
			cat, schema, ok := strings.Cut(arg, ".")
			if !ok {
				return fmt.Errorf("expected catalog.schema, got %q", arg)
			}
			path[i] = session.Site{Catalog: cat, Schema: schema}
		}
		return engine.SetSearchPath(sess, path)
	},
}

func init() {
	searchPathCmd.AddCommand(searchPathGetCmd)
	searchPathCmd.AddCommand(searchPathSetCmd)
}
