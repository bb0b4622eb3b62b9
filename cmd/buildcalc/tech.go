package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
)

type techOptions struct {
	area  string
	level int
}

func newTechCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &techOptions{}

	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Change a starbase tech level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTech(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.area, "area", "", "Tech area: hull, engine, beam or torpedo")
	cmd.Flags().IntVar(&opts.level, "level", 0, "Target tech level")

	return cmd
}

func runTech(cmd *cobra.Command, rootFlags *rootFlags, opts *techOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	area, err := parseArea(s.name, opts.area)
	if err != nil {
		return err
	}
	t, err := build.NewTechUpgrade(s.scenario.Planet, s.storage, s.env)
	if err != nil {
		return newCommandError(s.name, "starting tech upgrade", err, suggestionFor(err))
	}
	if !t.SetTechLevel(area, opts.level) {
		s.log.Warn().Int("requested", opts.level).Int("level", t.TechLevel(area)).Msg("tech level clamped")
	}
	fmt.Fprintf(s.out, "%s tech: %d (allowed %d..%d)\n", area, t.TechLevel(area), t.MinTechLevel(area), t.MaxTechLevel(area))
	return s.finish(t)
}
