package main

import (
	"github.com/spf13/cobra"

	"notesboard/internal/client/domain/entities"
)

func newCreateCmd(c *cli) *cobra.Command {
	var input entities.NoteInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := c.board.OpenCreate()

			state, err := f.Submit(cmd.Context(), input)
			if err != nil {
				return err
			}

			return c.finishForm(state, f.Errors(), func() error {
				notes := c.board.Store().Notes()
				return c.board.RenderNote(c.out, notes[len(notes)-1].ID)
			})
		},
	}

	cmd.Flags().StringVarP(&input.Title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&input.Content, "content", "m", "", "Note content")

	return cmd
}
