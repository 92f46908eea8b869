package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/badges"
	"github.com/ReedRawlings/moodlet/internal/daemon"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and when you earned them",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tDESCRIPTION\tEARNED")
	for _, def := range badges.All() {
		earned := "-"
		if at, ok := p.Badges[def.ID]; ok {
			earned = at.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Description, earned)
	}
	return w.Flush()
}
