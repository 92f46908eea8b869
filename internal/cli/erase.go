package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/daemon"
)

func init() {
	eraseCmd.Flags().BoolVar(&eraseYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(eraseCmd)
}

var eraseYes bool

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Delete all mood data, points, badges, and the companion",
	RunE:  runErase,
}

func runErase(cmd *cobra.Command, args []string) error {
	if !eraseYes {
		fmt.Print("This deletes everything: entries, points, badges, unlocks, companion. Type 'erase' to confirm: ")
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Scan()
		if strings.TrimSpace(scanner.Text()) != "erase" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DB.EraseAll(); err != nil {
		return err
	}
	fmt.Println("All data erased.")
	return nil
}
