package app

import (
	"fmt"

	"github.com/blackwell-systems/lumina/internal/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	var (
		flagName   string
		flagTheme  string
		flagImages string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
		Long: `Without flags, prints the current settings. Flags mutate the single
settings record in place and persist it immediately.

Examples:
  lumina settings
  lumina settings --name Ada --theme violet
  lumina settings --images off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := false

			if flagName != "" {
				session.Settings.UserName = flagName
				changed = true
			}
			if flagTheme != "" {
				theme := settings.ThemeColor(flagTheme)
				if !theme.Valid() {
					return fmt.Errorf("unknown theme %q (teal, blue, violet)", flagTheme)
				}
				session.Settings.ThemeColor = theme
				changed = true
			}
			switch flagImages {
			case "":
			case "on":
				session.Settings.EnableAIImages = true
				changed = true
			case "off":
				session.Settings.EnableAIImages = false
				changed = true
			default:
				return fmt.Errorf("--images must be on or off")
			}

			if changed {
				if err := session.SaveSettings(); err != nil {
					return err
				}
				ok("Settings saved")
			}

			st := session.Settings
			images := "off"
			if st.EnableAIImages {
				images = "on"
			}
			fmt.Printf("name:      %s\n", st.UserName)
			fmt.Printf("theme:     %s\n", st.ThemeColor)
			fmt.Printf("ai images: %s\n", images)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "Display name")
	cmd.Flags().StringVar(&flagTheme, "theme", "", "Theme color: teal, blue, or violet")
	cmd.Flags().StringVar(&flagImages, "images", "", "AI cover images: on or off")
	return cmd
}
