package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/lumina/internal/tui"
	"github.com/blackwell-systems/lumina/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	session *Session

	flagNoColor       bool
	flagNoInteractive bool
)

var appVersion = "dev"

// SetVersion records the build version injected from main.
func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Discover, read, and annotate content with AI-grounded search",
	Long: `lumina is a personal reading library. It finds books, news, and articles
through AI-grounded search, imports them as readable items, and lets you
annotate passages with color-coded highlights.

Run 'lumina' with no arguments to launch the interactive reader.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if util.IsTTY() && !flagNoInteractive {
			return runTUI(tui.ViewHub, "")
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		session, err = newSession()
		if err != nil {
			return err
		}
		return nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newDiscoverCmd(),
		newLibraryCmd(),
		newReadCmd(),
		newDeleteCmd(),
		newHighlightsCmd(),
		newExplainCmd(),
		newSettingsCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
