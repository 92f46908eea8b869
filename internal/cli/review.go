package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/app/review"
	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

func init() {
	reviewCmd.Flags().BoolVar(&reviewComplete, "complete", false, "Mark the pending review as done and collect the bonus")
	rootCmd.AddCommand(reviewCmd)
}

var reviewComplete bool

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Look back at last week's moods",
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}

	now := time.Now()
	weekStart, pending := review.UnreviewedWeekStart(p, now)
	if !pending {
		fmt.Println("No review pending. Come back after the week ends.")
		return nil
	}

	entries, err := d.DB.EntriesBetween(weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return err
	}
	prev, err := d.DB.EntriesBetween(weekStart.AddDate(0, 0, -7), weekStart)
	if err != nil {
		return err
	}
	sum := review.Summarize(entries, prev)

	fmt.Printf("Week of %s\n", domain.DayKey(weekStart))
	fmt.Printf("  Check-ins: %d across %d day(s)\n", sum.EntryCount, sum.DaysLogged)
	if sum.EntryCount > 0 {
		fmt.Printf("  Average mood: %.1f (%s)\n", sum.AverageMood, sum.DominantMood)
		fmt.Printf("  Trend vs previous week: %s\n", sum.Trend)
		if len(sum.TopActivities) > 0 {
			fmt.Print("  Top activities:")
			for _, a := range sum.TopActivities {
				fmt.Printf(" %s(%d)", a.Tag, a.Count)
			}
			fmt.Println()
		}
	}

	if !reviewComplete {
		fmt.Printf("\nRun 'moodlet review --complete' to collect +%d points.\n", points.WeeklyReviewBonus)
		return nil
	}

	review.MarkReviewed(p, weekStart)
	if err := d.DB.SaveProfile(p); err != nil {
		return err
	}
	fmt.Printf("\nReview complete. +%d points (balance %d).\n", points.WeeklyReviewBonus, p.TotalPoints)
	return nil
}
