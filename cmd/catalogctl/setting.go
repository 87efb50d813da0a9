package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingCmd = &cobra.Command{
	Use:   "setting <name>",
	Short: "Validate a configuration parameter name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.ResolveSetting(args[0]); err != nil {
			return err
		}
		fmt.Printf("%q is a recognized configuration parameter\n", args[0])
		return nil
	},
}
