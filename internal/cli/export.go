package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/export"
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Export format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every mood entry as CSV or JSON",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.DB.EntriesBetween(time.Unix(0, 0), time.Now().AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, format, entries); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Printf("Wrote %d entries to %s\n", len(entries), exportOut)
	}
	return nil
}
