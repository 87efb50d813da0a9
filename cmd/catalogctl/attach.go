package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach a new, empty catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Attach(args[0]); err != nil {
			return err
		}
		fmt.Printf("attached %q\n", args[0])
		return nil
	},
}
