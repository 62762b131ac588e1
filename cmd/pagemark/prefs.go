package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pagemark/internal/prefs"
)

func newPrefsCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Reader display preferences",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p := state.prefs.Current()
				fmt.Printf("fontScale:   %.2f\ntheme:       %s\nscroll:      %s\nfontFamily:  %s\nlineSpacing: %s\n",
					p.FontScale, p.Theme, p.Scroll, p.FontFamily, p.LineSpacing)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a preference (fontScale, theme, scroll, fontFamily, lineSpacing)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				switch key {
				case "fontScale", "theme", "scroll", "fontFamily", "lineSpacing":
				default:
					return fmt.Errorf("unknown preference %q", key)
				}
				updated, err := state.prefs.Update(func(p *prefs.Preferences) {
					switch key {
					case "fontScale":
						if scale, parseErr := strconv.ParseFloat(value, 64); parseErr == nil {
							p.FontScale = scale
						}
					case "theme":
						p.Theme = prefs.ThemeMode(value)
					case "scroll":
						p.Scroll = prefs.ScrollMode(value)
					case "fontFamily":
						p.FontFamily = prefs.FontFamily(value)
					case "lineSpacing":
						p.LineSpacing = prefs.LineSpacing(value)
					}
				})
				if err != nil {
					return err
				}
				fmt.Printf("fontScale=%.2f theme=%s scroll=%s fontFamily=%s lineSpacing=%s\n",
					updated.FontScale, updated.Theme, updated.Scroll, updated.FontFamily, updated.LineSpacing)
				return nil
			},
		},
	)
	return cmd
}
