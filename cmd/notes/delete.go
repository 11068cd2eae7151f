package main

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.board.Delete(cmd.Context(), args[0]); err != nil {
				return errReported
			}
			return nil
		},
	}
}
