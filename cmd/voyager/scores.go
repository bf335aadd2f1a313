package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-voyager/internal/platform/tui"
	"github.com/vovakirdan/space-voyager/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best (or most recent) recorded runs.

Examples:
  voyager scores
  voyager scores --limit 20
  voyager scores --recent
  voyager scores --tui
  voyager scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history and the high score")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(tui.GameID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.Run
	title := "High Scores"
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(tui.GameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(tui.GameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("%s - Space Voyager\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'voyager play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-7s  %-12s  %s\n", "Rank", "Score", "Time", "Preset", "Pilot", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-7s  %-12s  %s\n", "----", "-----", "----", "------", "-----", "----")
	for i, r := range runs {
		pilot := r.Player
		if pilot == "" {
			pilot = "-"
		}
		fmt.Printf("  %-4d  %-10.0f  %-8s  %-7s  %-12s  %s\n",
			i+1, r.Score, fmt.Sprintf("%.1fs", r.Elapsed), r.Preset, pilot, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(tui.GameID); err == nil {
		fmt.Printf("Best: %.0f\n", high)
	}
	return nil
}
