package cmd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/render"
)

func listCmd(a *app) *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Example: `  timetags list --mode day
  timetags list --mode week --date 2024-09-02 --to 2024-09-04 --tag Backend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := vf.query(a)
			if err != nil {
				return err
			}
			v, err := a.tracker.View(q)
			if err != nil {
				return err
			}
			r := render.New(cmd.OutOrStdout(), a.tracker)
			fmt.Fprint(cmd.OutOrStdout(), r.Entries(v.Label, sortedEntries(v.Entries)))
			return nil
		},
	}
	vf.register(cmd)
	return cmd
}

// sortedEntries returns a copy ordered by date and start time.
func sortedEntries(entries []model.TimeEntry) []model.TimeEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(x, y model.TimeEntry) int {
		return cmp.Or(cmp.Compare(x.Date, y.Date), cmp.Compare(x.StartTime, y.StartTime))
	})
	return out
}
