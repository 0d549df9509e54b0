package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/colors"
	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/render"
	"github.com/Tiliavir/timetags/internal/tracker"
)

func tagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(tagAddCmd(a))
	cmd.AddCommand(tagEditCmd(a))
	cmd.AddCommand(tagRmCmd(a))
	cmd.AddCommand(tagListCmd(a))
	cmd.AddCommand(tagContrastCmd())
	return cmd
}

func tagAddCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Create a tag",
		Example: `  timetags tag add Backend --color "#3B82F6"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.tracker.CreateTag(model.TagDraft{Name: args[0], Color: color})
			if err != nil {
				return writeErr(err)
			}
			r := render.New(cmd.OutOrStdout(), a.tracker)
			fmt.Fprintf(cmd.OutOrStdout(), "Added tag %s %s\n", r.Chip(tag), tag.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Background colour as 6-digit hex")
	return cmd
}

func tagEditCmd(a *app) *cobra.Command {
	var name, color string
	cmd := &cobra.Command{
		Use:   "edit <name|id>",
		Short: "Rename or recolour a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := lookupTag(a, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				tag.Name = name
			}
			if cmd.Flags().Changed("color") {
				tag.Color = color
			}
			tag, err = a.tracker.UpdateTag(tag)
			if err != nil {
				return writeErr(err)
			}
			r := render.New(cmd.OutOrStdout(), a.tracker)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tag %s %s\n", r.Chip(tag), tag.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New background colour")
	return cmd
}

func tagRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a tag (entries keep the reference and show it as Unknown)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := lookupTag(a, args[0])
			if err != nil {
				return err
			}
			if err := a.tracker.DeleteTag(tag.ID); err != nil {
				return writeErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s\n", tag.Name)
			return nil
		},
	}
}

func tagListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), render.New(cmd.OutOrStdout(), a.tracker).Tags(a.tracker.Tags()))
			return nil
		},
	}
}

func tagContrastCmd() *cobra.Command {
	var diff float64
	cmd := &cobra.Command{
		Use:   "contrast <hex>",
		Short: "Show the HSL value and derived text colour of a background",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hsl, err := colors.HexToHSL(args[0])
			if err != nil {
				return err
			}
			text, err := colors.ContrastingColorDiff(args[0], diff)
			if err != nil {
				return err
			}
			bg := "#" + strings.TrimPrefix(args[0], "#")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hsl(%.0f, %.0f%%, %.0f%%)\n", hsl.H, hsl.S, hsl.L)
			fmt.Fprintf(out, "text %s\n", text)
			fmt.Fprintln(out, render.New(out, nil).Chip(model.Tag{Name: "Sample", Color: bg, TextColor: text}))
			return nil
		},
	}
	cmd.Flags().Float64Var(&diff, "diff", colors.DefaultLightnessDiff, "Lightness offset in percent")
	return cmd
}

func lookupTag(a *app, ref string) (model.Tag, error) {
	id, ok := a.tracker.FindTagID(ref)
	if !ok {
		return model.Tag{}, fmt.Errorf("%w: %q", tracker.ErrTagNotFound, ref)
	}
	tag, _ := a.tracker.Tag(id)
	return tag, nil
}
