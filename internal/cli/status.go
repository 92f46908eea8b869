package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/app/review"
	"github.com/ReedRawlings/moodlet/internal/app/streak"
	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show points, streak, and anything that needs attention",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Points\t%d\n", p.TotalPoints)
	fmt.Fprintf(w, "Streak\t%d day(s)\n", p.CurrentStreak)
	fmt.Fprintf(w, "Longest streak\t%d day(s)\n", p.LongestStreak)
	fmt.Fprintf(w, "Badges\t%d/5\n", len(p.Badges))
	next := streak.NextMilestone(p)
	fmt.Fprintf(w, "Next milestone\t%d days (+%d points, %d to go)\n",
		next, points.MilestoneBonus(next), streak.DaysUntilNextMilestone(p))
	if err := w.Flush(); err != nil {
		return err
	}

	if streak.AtRisk(p, now) {
		fmt.Println("\nYour streak is at risk. Check in today to keep it going.")
	}
	if weekStart, pending := review.UnreviewedWeekStart(p, now); pending {
		fmt.Printf("\nWeekly review pending for the week of %s (+%d points). Run 'moodlet review'.\n",
			domain.DayKey(weekStart), points.WeeklyReviewBonus)
	}

	if c, err := d.DB.LoadCompanion(); err == nil {
		fmt.Printf("\nCompanion: %s the %s\n", c.Name, c.Species)
	}
	return nil
}
