package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/aggregate"
	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/render"
	"github.com/Tiliavir/timetags/internal/tracker"
)

func exportCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export time entries to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := vf.query(a)
			if err != nil {
				return err
			}
			v, err := a.tracker.View(q)
			if err != nil {
				return err
			}
			entries := sortedEntries(v.Entries)
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "md":
				fmt.Fprint(out, render.New(out, a.tracker).Entries(v.Label, entries))
			case "csv", "":
				return printCSV(out, a.tracker, entries)
			default:
				return fmt.Errorf("unknown format %q (want csv, json or md)", format)
			}
			return nil
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, json, md")
	return cmd
}

func printCSV(w io.Writer, tr *tracker.Tracker, entries []model.TimeEntry) error {
	fmt.Fprintln(w, "date,start,end,duration_hours,description,tags")
	for _, e := range entries {
		dur, err := aggregate.CalculateDuration(e)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(e.Tags))
		for _, id := range e.Tags {
			names = append(names, tr.TagName(id))
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s\n",
			csvEscape(e.Date),
			csvEscape(e.StartTime),
			csvEscape(e.EndTime),
			dur,
			csvEscape(e.Description),
			csvEscape(strings.Join(names, ";")),
		)
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
