package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
	"github.com/Tiliavir/timetags/internal/tracker"
)

// viewFlags are shared by list, report, export and watch.
type viewFlags struct {
	mode string
	date string
	to   string
	tags []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "View mode: day, week, month (default from config)")
	cmd.Flags().StringVar(&f.date, "date", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date YYYY-MM-DD, week mode only")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "Only entries with this tag (name or id, repeatable)")
}

// query turns the flags into a tracker query. Unknown tags are an error.
func (f *viewFlags) query(a *app) (tracker.Query, error) {
	mode := f.mode
	if mode == "" {
		mode = a.cfg.View.DefaultMode
	}
	m, err := model.ParseViewMode(mode)
	if err != nil {
		return tracker.Query{}, err
	}

	date := f.date
	if date == "" {
		date = a.now().Format(model.DateLayout)
	}

	ids, err := resolveTags(a, f.tags)
	if err != nil {
		return tracker.Query{}, err
	}

	return tracker.Query{
		Mode:      m,
		Selection: timecalc.Selection{From: date, To: f.to},
		TagIDs:    ids,
	}, nil
}

// resolveTags maps tag names or ids to ids.
func resolveTags(a *app, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, ok := a.tracker.FindTagID(ref)
		if !ok {
			return nil, fmt.Errorf("unknown tag %q", ref)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
