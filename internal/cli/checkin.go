package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/checkin"
	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

func init() {
	checkinCmd.Flags().StringVarP(&checkinMood, "mood", "m", "", "How you feel: sad, annoyed, neutral, content, happy (required)")
	checkinCmd.Flags().StringVarP(&checkinNote, "note", "n", "", "Optional reflection note")
	checkinCmd.Flags().StringSliceVarP(&checkinTags, "tags", "t", nil, "Activity tags (comma separated)")
	checkinCmd.Flags().StringSliceVarP(&checkinPeople, "people", "p", nil, "People tags (comma separated)")
	checkinCmd.MarkFlagRequired("mood")
	rootCmd.AddCommand(checkinCmd)
}

var (
	checkinMood   string
	checkinNote   string
	checkinTags   []string
	checkinPeople []string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Log how you feel right now",
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	mood, ok := domain.ParseMood(strings.ToLower(checkinMood))
	if !ok {
		return fmt.Errorf("%w (got %q)", domain.ErrInvalidMood, checkinMood)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Checkin.CheckIn(checkin.Options{
		Mood:         mood,
		Note:         checkinNote,
		ActivityTags: checkinTags,
		PeopleTags:   checkinPeople,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s.\n", mood)
	if res.CapReached {
		fmt.Println("Daily point cap reached; this entry earned no points.")
	} else {
		fmt.Printf("  +%d points", res.PointsEarned)
		if res.StreakBonus > 0 {
			fmt.Printf(" (+%d streak bonus)", res.StreakBonus)
		}
		fmt.Println()
	}
	fmt.Printf("  Streak: %d day(s)  Balance: %d points\n", res.CurrentStreak, res.TotalPoints)
	for _, b := range res.NewBadges {
		fmt.Printf("  Badge unlocked: %s\n", b.ID)
	}
	return nil
}
