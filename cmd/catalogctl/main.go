// Command catalogctl is an interactive front-end over the heron
// Engine facade: attach/detach catalogs, list schemas, resolve a
// qualified name, and inspect or change a session's search path.
// Each invocation is a fresh process with a fresh Engine — there is
// no persisted state across invocations (spec.md §6: "Persisted
// state... out of core scope") — so each invocation runs one
// subcommand, and nothing it attaches is visible to later invocations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"

	heron "github.com/heron-db/catalog"
)

var (
	defaultDatabase string
	skipBootstrap   bool

	engine *heron.Engine
	sess   *session.Session
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Inspect and drive a heron catalog",
	Long: `catalogctl drives a heron catalog Engine from the command line:
attach or detach catalogs, list schemas, resolve a qualified name, and
read or change a session's search path.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		e, err := heron.New(heron.Options{
			Logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
			SkipBootstrap: skipBootstrap,
		})
		if err != nil {
			return fmt.Errorf("start engine: %w", err)
		}
		s, err := e.NewSession("catalogctl", defaultDatabase)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		engine, sess = e, s
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&defaultDatabase, "database", catalog.SystemCatalogName, "session default database")
	rootCmd.PersistentFlags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "skip seeding the system catalog from DuckDB's built-ins")

	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(detachCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(searchPathCmd)
	rootCmd.AddCommand(settingCmd)
}
