package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/aggregate"
	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/render"
	"github.com/Tiliavir/timetags/internal/tracker"
)

func reportCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show total and average hours with a per-tag breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := vf.query(a)
			if err != nil {
				return err
			}
			rep, err := a.tracker.Report(q)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), a.tracker, rep, format)
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "md", "Output format: md, csv, json")
	return cmd
}

type jsonTagTotal struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hours   string `json:"hours"`
	Entries int    `json:"entries"`
}

type jsonReport struct {
	Label        string         `json:"label"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	TotalHours   string         `json:"totalHours"`
	AverageHours string         `json:"averageHours"`
	Entries      int            `json:"entries"`
	Days         int            `json:"days"`
	Tags         []jsonTagTotal `json:"tags"`
}

func writeReport(w io.Writer, tr *tracker.Tracker, rep tracker.Report, format string) error {
	s := rep.Summary
	switch format {
	case "csv":
		fmt.Fprintln(w, "tag,hours,entries")
		for _, tt := range s.ByTag {
			fmt.Fprintf(w, "%s,%s,%d\n", csvEscape(tr.TagName(tt.TagID)), aggregate.ToFixed1(tt.Hours), tt.Entries)
		}
		fmt.Fprintf(w, "Total,%s,%d\n", s.Total(), s.Entries)
	case "json":
		out := jsonReport{
			Label:        rep.Label,
			From:         rep.Range.Start.Format(model.DateLayout),
			To:           rep.Range.End.Format(model.DateLayout),
			TotalHours:   s.Total(),
			AverageHours: s.Average(),
			Entries:      s.Entries,
			Days:         s.Days,
			Tags:         make([]jsonTagTotal, 0, len(s.ByTag)),
		}
		for _, tt := range s.ByTag {
			out.Tags = append(out.Tags, jsonTagTotal{
				ID:      tt.TagID,
				Name:    tr.TagName(tt.TagID),
				Hours:   aggregate.ToFixed1(tt.Hours),
				Entries: tt.Entries,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md", "":
		fmt.Fprint(w, render.New(w, tr).Summary(rep.Label, s))
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", format)
	}
	return nil
}
