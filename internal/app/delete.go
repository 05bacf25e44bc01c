package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item and all of its highlights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			item := session.Library.ByID(id)
			if item == nil {
				return fmt.Errorf("item %q not found", id)
			}

			if !flagYes && !confirm(fmt.Sprintf("Delete %q and its highlights?", item.Title)) {
				fmt.Println("Canceled.")
				return nil
			}

			nHl := len(session.Highlights.ForItem(id))
			if err := session.DeleteItem(id); err != nil {
				return err
			}
			ok("Deleted %q (%d highlight(s) removed)", item.Title, nHl)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question on stdin, defaulting to yes.
func confirm(prompt string) bool {
	fmt.Printf("%s (Y/n): ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	}
	return false
}
