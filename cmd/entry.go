package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/render"
	"github.com/Tiliavir/timetags/internal/tracker"
	"github.com/Tiliavir/timetags/internal/validate"
)

func entryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
	}
	cmd.AddCommand(entryAddCmd(a))
	cmd.AddCommand(entryEditCmd(a))
	cmd.AddCommand(entryRmCmd(a))
	return cmd
}

func entryAddCmd(a *app) *cobra.Command {
	var (
		date, start, end, desc string
		tags                   []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a time entry",
		Example: `  timetags entry add --start 09:00 --end 12:30 -m "Sprint planning" --tag Meeting
  timetags entry add --date 2024-09-02 --start 13:00 --end 17:00 -m "API work" --tag API --tag Backend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = a.now().Format(model.DateLayout)
			}
			ids, err := resolveTags(a, tags)
			if err != nil {
				return err
			}
			e, err := a.tracker.CreateEntry(model.EntryDraft{
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				Description: desc,
				Tags:        ids,
			})
			if err != nil {
				return writeErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s\n", e.ID)
			fmt.Fprintln(cmd.OutOrStdout(), render.New(cmd.OutOrStdout(), a.tracker).Entry(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time HH:mm")
	cmd.Flags().StringVar(&end, "end", "", "End time HH:mm")
	cmd.Flags().StringVarP(&desc, "description", "m", "", "What was done")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag name or id (repeatable)")
	return cmd
}

func entryEditCmd(a *app) *cobra.Command {
	var (
		date, start, end, desc string
		tags                   []string
		clearTags              bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.EntryPatch
			flags := cmd.Flags()
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("start") {
				patch.StartTime = &start
			}
			if flags.Changed("end") {
				patch.EndTime = &end
			}
			if flags.Changed("description") {
				patch.Description = &desc
			}
			if flags.Changed("tag") || clearTags {
				ids, err := resolveTags(a, tags)
				if err != nil {
					return err
				}
				patch.Tags, patch.SetTags = ids, true
			}

			e, err := a.tracker.UpdateEntry(args[0], patch)
			if err != nil {
				return writeErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", e.ID)
			fmt.Fprintln(cmd.OutOrStdout(), render.New(cmd.OutOrStdout(), a.tracker).Entry(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "Start time HH:mm")
	cmd.Flags().StringVar(&end, "end", "", "End time HH:mm")
	cmd.Flags().StringVarP(&desc, "description", "m", "", "What was done")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replace tags (repeatable)")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "Remove all tags")
	return cmd
}

func entryRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a time entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tracker.DeleteEntry(args[0]); err != nil {
				return writeErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}

// writeErr classifies a tracker write error: input problems keep the usage
// exit code, anything else is a storage failure.
func writeErr(err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr),
		errors.Is(err, tracker.ErrEntryNotFound),
		errors.Is(err, tracker.ErrTagNotFound):
		return err
	}
	return storageErr(err)
}
