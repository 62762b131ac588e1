package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pagemark/pkg/domain"
)

func newImportCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Copy an EPUB or PDF into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := state.app.ImportBook(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %q", book.Title)
			if book.Author != "" {
				fmt.Printf(" by %s", book.Author)
			}
			fmt.Printf(" (%s)\n  id: %s\n", book.Format, book.ID)
			return nil
		},
	}
}

func newLibraryCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the library, most recently opened first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := state.app.Library()
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Println("Library is empty. Add a book with: pagemark import <file>")
				return nil
			}
			for _, book := range books {
				fmt.Printf("%s  [%s]  %s", book.ID, book.Format, book.Title)
				if book.Author != "" {
					fmt.Printf(" — %s", book.Author)
				}
				if book.LastOpenedAt != nil {
					fmt.Printf("  (opened %s)", book.LastOpenedAt.Format(time.DateOnly))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newOpenCmd(state *cliState) *cobra.Command {
	var showContent bool
	cmd := &cobra.Command{
		Use:   "open <book-id>",
		Short: "Open a book, resuming at the saved position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, opened, err := state.app.OpenBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			book := opened.Metadata
			fmt.Printf("Opened %q (%s)\n", book.Title, book.Format)
			switch book.Format {
			case domain.FormatEpub:
				fmt.Printf("  chapters: %d\n", doc.ChapterCount)
			case domain.FormatPdf:
				if doc.PageCount > 0 {
					fmt.Printf("  pages: %d\n", doc.PageCount)
				}
				fmt.Printf("  starting page: %d\n", doc.InitialPage+1)
			}
			if doc.InitialLocator != "" {
				fmt.Printf("  resume at: %s\n", doc.InitialLocator)
			}
			if showContent && doc.HTMLContent != "" {
				fmt.Println(doc.HTMLContent)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showContent, "content", false, "print the flattened book HTML")
	return cmd
}

func newDeleteCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Remove a book, its files, and its annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.app.DeleteBook(args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newSearchCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "search <book-id> <query>",
		Short: "Search inside a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := state.app.SearchInBook(args[0], args[1])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, res := range results {
				fmt.Printf("%5.1f%%  %s\n        %s\n", res.Percent*100, res.Locator, res.Snippet)
			}
			return nil
		},
	}
}
