package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"pagemark/internal/app"
)

func printAIResult(res app.AIResult) {
	if res.Queued {
		fmt.Println("Offline: request queued. Run `pagemark queue flush` once back online.")
		return
	}
	fmt.Println(res.Answer)
}

func newAskCmd(state *cliState) *cobra.Command {
	var queueOffline bool
	cmd := &cobra.Command{
		Use:   "ask <book-id> <question>",
		Short: "Ask the assistant a question about a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.app.Ask(cmd.Context(), args[0], args[1], queueOffline)
			if err != nil {
				return err
			}
			printAIResult(res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&queueOffline, "queue-offline", false, "queue the request when the network is down")
	return cmd
}

func newExplainCmd(state *cliState) *cobra.Command {
	var queueOffline bool
	cmd := &cobra.Command{
		Use:   "explain <book-id> <text>",
		Short: "Explain a selected passage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.app.Explain(cmd.Context(), args[0], args[1], queueOffline)
			if err != nil {
				return err
			}
			printAIResult(res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&queueOffline, "queue-offline", false, "queue the request when the network is down")
	return cmd
}

func newTranslateCmd(state *cliState) *cobra.Command {
	var queueOffline bool
	var target string
	cmd := &cobra.Command{
		Use:   "translate <book-id> <text>",
		Short: "Translate a selected passage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.app.Translate(cmd.Context(), args[0], args[1], languageName(target), queueOffline)
			if err != nil {
				return err
			}
			printAIResult(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "to", "English", "target language (name or BCP 47 code)")
	cmd.Flags().BoolVar(&queueOffline, "queue-offline", false, "queue the request when the network is down")
	return cmd
}

// languageName resolves a BCP 47 code like "fr" or "pt-BR" to its English
// display name for the prompt. Anything unparseable passes through as-is,
// so plain names like "French" keep working.
func languageName(target string) string {
	tag, err := language.Parse(target)
	if err != nil {
		return target
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return target
}

func newSimilarCmd(state *cliState) *cobra.Command {
	var queueOffline bool
	cmd := &cobra.Command{
		Use:   "similar <book-id>",
		Short: "Recommend books similar to this one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.app.SimilarBooks(cmd.Context(), args[0], queueOffline)
			if err != nil {
				return err
			}
			printAIResult(res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&queueOffline, "queue-offline", false, "queue the request when the network is down")
	return cmd
}

func newSummarizeCmd(state *cliState) *cobra.Command {
	var queueOffline bool
	cmd := &cobra.Command{
		Use:   "summarize <book-id> <section-text>",
		Short: "Summarize a section of the book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.app.SummarizeSection(cmd.Context(), args[0], args[1], queueOffline)
			if err != nil {
				return err
			}
			printAIResult(res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&queueOffline, "queue-offline", false, "queue the request when the network is down")
	return cmd
}

func newQueueCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage deferred assistant requests",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Replay queued requests now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := state.app.FlushQueue(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Processed %d queued request(s).\n", n)
			return nil
		},
	})
	return cmd
}

func newAICmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Assistant settings and status",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "on",
			Short: "Enable the assistant",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.settings.SetAIEnabled(true); err != nil {
					return err
				}
				fmt.Println("Assistant enabled.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "off",
			Short: "Disable the assistant",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.settings.SetAIEnabled(false); err != nil {
					return err
				}
				fmt.Println("Assistant disabled.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "key <api-key>",
			Short: "Save an API key override (blank clears it)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.settings.SetAPIKey(args[0]); err != nil {
					return err
				}
				fmt.Println("API key saved.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the capability gate state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				capability := state.app.AICapability(cmd.Context())
				fmt.Printf("enabled:  %v\napi key:  %v\nnetwork:  %v\nready:    %v\n",
					capability.Enabled, capability.HasAPIKey, capability.HasNetwork, capability.CanRun())
				return nil
			},
		},
	)
	return cmd
}
