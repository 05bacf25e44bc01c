package app

import (
	"fmt"

	"github.com/blackwell-systems/lumina/internal/tui"
	"github.com/blackwell-systems/lumina/internal/util"
	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <item-id>",
		Short: "Open an item in the interactive reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !util.IsTTY() {
				return fmt.Errorf("the reader needs a terminal")
			}
			if session.Library.ByID(args[0]) == nil {
				return fmt.Errorf("item %q not found", args[0])
			}
			return runTUI(tui.ViewReader, args[0])
		},
	}
}

// runTUI launches the interactive surface at the given view, wiring the
// session's stores and pipeline into it.
func runTUI(start tui.View, itemID string) error {
	return tui.Run(tui.Deps{
		Library:     session.Library,
		Highlights:  session.Highlights,
		Settings:    &session.Settings,
		AI:          session.AI,
		NewPipeline: session.NewPipeline,
		SaveSettings: func() error {
			return session.SaveSettings()
		},
		DeleteItem: session.DeleteItem,
	}, start, itemID)
}
