package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

type structuresOptions struct {
	kind      string
	count     int
	limitCash bool
	partial   bool
	auto      bool
}

func newStructuresCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &structuresOptions{}

	cmd := &cobra.Command{
		Use:   "structures",
		Short: "Build mines, factories or defense posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStructures(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "type", "", "Structure type: mines, factories, defense or base_defense")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Structures to add (negative to remove)")
	cmd.Flags().BoolVar(&opts.limitCash, "limit-cash", false, "Build as many of count as the planet can pay for")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "Apply as much of count as the limits allow")
	cmd.Flags().BoolVar(&opts.auto, "auto", false, "Build toward the planet's autobuild goals")

	return cmd
}

func runStructures(cmd *cobra.Command, rootFlags *rootFlags, opts *structuresOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	b, err := build.NewBuildStructures(s.scenario.Planet, s.storage, s.env)
	if err != nil {
		return newCommandError(s.name, "starting structure build", err, suggestionFor(err))
	}

	if opts.auto {
		n := b.DoStandardAutoBuild()
		s.log.Debug().Int("added", n).Msg("autobuild")
	}
	if opts.kind != "" {
		t, ok := model.ParseBuilding(opts.kind)
		if !ok {
			b.Close()
			return newCommandError(s.name, "parsing --type", fmt.Errorf("unknown structure %q", opts.kind), "Use mines, factories, defense or base_defense.")
		}
		var got int
		if opts.limitCash {
			got = b.AddLimitCash(t, opts.count)
		} else {
			got = b.Add(t, opts.count, opts.partial)
		}
		if got != opts.count {
			s.log.Warn().Int("requested", opts.count).Int("applied", got).Msg("amount limited")
		}
	}
	for _, t := range model.Buildings {
		fmt.Fprintf(s.out, "%-14s %5d (allowed %d..%d)\n", t, b.NumBuildings(t), b.MinBuildings(t), b.MaxBuildings(t))
	}
	return s.finish(b)
}
