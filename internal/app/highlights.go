package app

import (
	"fmt"

	"github.com/blackwell-systems/lumina/internal/annotation"
	"github.com/blackwell-systems/lumina/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHighlightsCmd() *cobra.Command {
	var flagRemove string

	cmd := &cobra.Command{
		Use:   "highlights <item-id>",
		Short: "List (or remove) highlights for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID := args[0]
			item := session.Library.ByID(itemID)
			if item == nil {
				return fmt.Errorf("item %q not found", itemID)
			}

			if flagRemove != "" {
				if err := session.Highlights.Remove(flagRemove); err != nil {
					return err
				}
				ok("Highlight removed")
				return nil
			}

			hs := session.Highlights.ForItem(itemID)
			if len(hs) == 0 {
				fmt.Printf("No highlights on %q yet.\n", item.Title)
				return nil
			}
			header("Highlights on %q", item.Title)
			for _, h := range hs {
				fmt.Printf("  %s %q\n", colorDot(h.Color), h.Text)
				fmt.Printf("    %s\n", color.HiBlackString("%s · %s", util.FormatDate(h.CreatedAt), h.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagRemove, "remove", "", "Remove the highlight with the given ID")
	return cmd
}

func colorDot(c annotation.Color) string {
	switch c {
	case annotation.ColorYellow:
		return color.YellowString("●")
	case annotation.ColorGreen:
		return color.GreenString("●")
	case annotation.ColorBlue:
		return color.BlueString("●")
	case annotation.ColorPink:
		return color.MagentaString("●")
	}
	return "●"
}
