package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes of one page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.board.Mount(cmd.Context()); err != nil {
				return errReported
			}

			if asJSON {
				encoder := json.NewEncoder(c.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(c.board.Store().Notes())
			}

			return c.board.Render(c.out)
		},
	}

	addPageFlags(cmd, c)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")

	return cmd
}
