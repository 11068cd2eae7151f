package main

import (
	"github.com/spf13/cobra"

	"notesboard/internal/client/shell"
)

func newShellCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive board session",
		Long: `Shell loads one page of notes and keeps it in memory while you create,
edit and delete notes. Type "help" inside the shell for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return shell.New(c.board, c.in, c.out).Run(cmd.Context())
		},
	}

	addPageFlags(cmd, c)

	return cmd
}
