package app

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	var (
		flagSave     bool
		flagNoImages bool
	)

	cmd := &cobra.Command{
		Use:   "discover <query>",
		Short: "Search for content with AI-grounded search",
		Long: `Run one grounded search against the AI service and print the overview plus
its citation sources. With --save, the result is imported into the library:
structured extraction, optional AI cover art, then commit.

Examples:
  lumina discover "sci-fi books 2024"
  lumina discover "latest AI news" --save
  lumina discover "history of the Roman Empire" --save --no-images`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pipe := session.NewPipeline(printStage)

			res, err := pipe.Search(ctx, args[0])
			if err != nil {
				if err == ingest.ErrEmptyQuery {
					return nil
				}
				return err
			}

			header("AI Overview")
			fmt.Println(res.Text)
			if len(res.Sources) > 0 {
				fmt.Println()
				header("Sources")
				for _, s := range res.Sources {
					fmt.Printf("  %s %s\n", color.CyanString("•"), s.Title)
					fmt.Printf("    %s\n", color.HiBlackString(s.URI))
				}
			}

			if !flagSave {
				return nil
			}

			st := session.Settings
			if flagNoImages {
				st.EnableAIImages = false
			}
			item, stages, err := pipe.Import(ctx, res, st)
			if err != nil {
				return err
			}
			for _, sr := range stages {
				if sr.Outcome == ingest.OutcomeFallback && sr.Stage == ingest.StageAnalyzing {
					warn("Extraction failed; saved the raw search text instead.")
				}
				if sr.Outcome == ingest.OutcomeFailed && sr.Stage == ingest.StageGeneratingArt {
					warn("Cover art unavailable; saved without an image.")
				}
			}
			ok("Added %q to your library (%s)", item.Title, item.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagSave, "save", false, "Import the result into the library")
	cmd.Flags().BoolVar(&flagNoImages, "no-images", false, "Skip AI cover art for this import")
	return cmd
}

// printStage renders pipeline progress for the non-interactive flow.
func printStage(s ingest.Stage) {
	if label := s.Label(); label != "" {
		fmt.Println(color.HiBlackString(label))
	}
}
