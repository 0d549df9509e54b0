package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/seed"
	"github.com/Tiliavir/timetags/internal/storage"
	"github.com/Tiliavir/timetags/internal/timecalc"
)

const seedDays = 90

func seedCmd(a *app) *cobra.Command {
	var (
		entries  int
		from, to string
		rngSeed  uint64
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with generated demo tags and entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.tracker.Entries()) > 0 || len(a.tracker.Tags()) > 0 {
				if !force {
					return errors.New("data already exists; use --force to replace it")
				}
			}
			if entries < 0 {
				return fmt.Errorf("--entries must not be negative, got %d", entries)
			}

			now := a.now()
			if to == "" {
				to = now.Format(model.DateLayout)
			}
			if from == "" {
				from = now.AddDate(0, 0, -seedDays).Format(model.DateLayout)
			}
			start, err := timecalc.ParseDate(from, now.Location())
			if err != nil {
				return err
			}
			end, err := timecalc.ParseDate(to, now.Location())
			if err != nil {
				return err
			}
			if end.Before(start) {
				return fmt.Errorf("%w: %s → %s", timecalc.ErrInvertedRange, from, to)
			}

			if !cmd.Flags().Changed("seed") {
				rngSeed = rand.Uint64()
			}
			rng := rand.New(rand.NewPCG(rngSeed, rngSeed))
			tags, generated := seed.Generate(rng, storage.GenerateID, start, end, entries)

			if err := a.tracker.Replace(tags, generated); err != nil {
				return storageErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tags and %d entries (%s → %s)\n", len(tags), len(generated), from, to)
			return nil
		},
	}
	cmd.Flags().IntVar(&entries, "entries", seed.DefaultEntries, "Number of entries to generate")
	cmd.Flags().StringVar(&from, "from", "", "First date (default 90 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (default today)")
	cmd.Flags().Uint64Var(&rngSeed, "seed", 0, "Random seed for reproducible data")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing data")
	return cmd
}
