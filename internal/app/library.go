package app

import (
	"fmt"

	"github.com/blackwell-systems/lumina/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List library items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := session.Library.Items()
			if len(items) == 0 {
				fmt.Println("Library is empty. Try: lumina discover \"sci-fi books 2024\" --save")
				return nil
			}
			for _, it := range items {
				author := it.Author
				if author == "" {
					author = "Unknown Author"
				}
				nHl := len(session.Highlights.ForItem(it.ID))
				fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(it.Title), color.HiBlackString("(%s)", it.ID))
				fmt.Printf("  %s · %s · %s", author, it.Kind, util.FormatDate(it.DateAdded))
				if nHl > 0 {
					fmt.Printf(" · %s", color.YellowString("%d highlight(s)", nHl))
				}
				fmt.Println()
			}
			return nil
		},
	}
}
