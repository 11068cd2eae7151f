package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(c *cli) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit a note",
		Long: `Update loads the configured page, opens the note's edit form prefilled with
its current values and replaces only the fields given by flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ctx := cmd.Context()

			if err := c.board.Mount(ctx); err != nil {
				return errReported
			}

			f, err := c.board.OpenUpdate(id)
			if err != nil {
				return fmt.Errorf("%w (page %d)", err, c.board.Page().Page)
			}

			input := f.Values()
			if cmd.Flags().Changed("title") {
				input.Title = title
			}
			if cmd.Flags().Changed("content") {
				input.Content = content
			}

			state, err := f.Submit(ctx, input)
			if err != nil {
				return err
			}

			return c.finishForm(state, f.Errors(), func() error {
				return c.board.RenderNote(c.out, id)
			})
		},
	}

	addPageFlags(cmd, c)
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New content")

	return cmd
}
