package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHighlightCmd(state *cliState) *cobra.Command {
	var color string
	addCmd := &cobra.Command{
		Use:   "add <book-id> <locator> <quote>",
		Short: "Highlight a passage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := state.app.AddHighlight(args[0], args[1], args[2], color)
			if err != nil {
				return err
			}
			fmt.Printf("Highlighted. id: %s\n", h.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&color, "color", "#ffeb3b", "highlight color (hex)")

	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Manage highlights",
	}
	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "list <book-id>",
			Short: "List a book's highlights, newest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				highlights, err := state.app.Highlights(args[0])
				if err != nil {
					return err
				}
				if len(highlights) == 0 {
					fmt.Println("No highlights.")
					return nil
				}
				for _, h := range highlights {
					fmt.Printf("%s  %s  %s\n  %q\n", h.ID, h.CreatedAt.Format(time.DateOnly), h.Locator, h.Quote)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <highlight-id>",
			Short: "Delete a highlight",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.app.RemoveHighlight(args[0]); err != nil {
					return err
				}
				fmt.Println("Removed.")
				return nil
			},
		},
	)
	return cmd
}

func newNoteCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <book-id> <locator> <text>",
			Short: "Attach a note at a position",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := state.app.AddNote(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Printf("Noted. id: %s\n", n.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list <book-id>",
			Short: "List a book's notes, most recently edited first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := state.app.Notes(args[0])
				if err != nil {
					return err
				}
				if len(notes) == 0 {
					fmt.Println("No notes.")
					return nil
				}
				for _, n := range notes {
					fmt.Printf("%s  %s  %s\n  %s\n", n.ID, n.UpdatedAt.Format(time.DateOnly), n.Locator, n.Text)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <note-id>",
			Short: "Delete a note",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.app.RemoveNote(args[0]); err != nil {
					return err
				}
				fmt.Println("Removed.")
				return nil
			},
		},
	)
	return cmd
}
