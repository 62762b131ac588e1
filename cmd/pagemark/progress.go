package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProgressCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or set reading progress",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <book-id>",
			Short: "Show the saved resume point",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				progress, found, err := state.app.Progress(args[0])
				if err != nil {
					return err
				}
				if !found {
					fmt.Println("No saved progress.")
					return nil
				}
				fmt.Printf("%s  (%.1f%%, saved %s)\n",
					progress.Locator, progress.Percent*100, progress.UpdatedAt.Format("2006-01-02 15:04"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <book-id> <locator> <percent>",
			Short: "Save the resume point (percent in 0..1)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				percent, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("invalid percent %q: %w", args[2], err)
				}
				if err := state.app.SaveProgress(args[0], args[1], percent); err != nil {
					return err
				}
				fmt.Println("Progress saved.")
				return nil
			},
		},
	)
	return cmd
}
