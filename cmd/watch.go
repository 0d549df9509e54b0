package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/watch"
)

func watchCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-print the report whenever the stored data changes",
		Long: `watch prints the report once and then again after every change to the
data directory, at most once per second. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.watchPath == "" {
				return errors.New("the memory backend cannot be watched")
			}
			out := cmd.OutOrStdout()

			show := func() error {
				q, err := vf.query(a)
				if err != nil {
					return err
				}
				rep, err := a.tracker.Report(q)
				if err != nil {
					return err
				}
				return writeReport(out, a.tracker, rep, format)
			}
			if err := show(); err != nil {
				return err
			}

			w, err := watch.New(a.watchPath)
			if err != nil {
				return storageErr(err)
			}
			return w.Run(cmd.Context(), func() {
				if err := a.tracker.Load(); err != nil {
					slog.Warn("reload failed", "error", err)
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				fmt.Fprintln(out)
				if err := show(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			})
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "md", "Output format: md, csv, json")
	return cmd
}
