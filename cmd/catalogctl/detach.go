package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detachCmd = &cobra.Command{
	Use:   "detach <name>",
	Short: "Detach an attached catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Detach(args[0]); err != nil {
			return err
		}
		fmt.Printf("detached %q\n", args[0])
		return nil
	},
}
