package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

type shipOptions struct {
	hull          int
	engine        int
	beam          int
	numBeams      int
	launcher      int
	numLaunchers  int
	noStorage     bool
	noTechUpgrade bool
}

func newShipCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &shipOptions{}

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Price a ship build order at the planet's starbase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShip(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().IntVar(&opts.hull, "hull", 0, "Hull id (keeps the planet's order when 0)")
	cmd.Flags().IntVar(&opts.engine, "engine", 0, "Engine id")
	cmd.Flags().IntVar(&opts.beam, "beam", 0, "Beam id")
	cmd.Flags().IntVar(&opts.numBeams, "beams", 0, "Number of beams")
	cmd.Flags().IntVar(&opts.launcher, "launcher", 0, "Torpedo launcher id")
	cmd.Flags().IntVar(&opts.numLaunchers, "launchers", 0, "Number of torpedo launchers")
	cmd.Flags().BoolVar(&opts.noStorage, "no-storage", false, "Buy every part instead of using stored parts")
	cmd.Flags().BoolVar(&opts.noTechUpgrade, "no-tech-upgrade", false, "Refuse orders that need a tech upgrade")

	return cmd
}

func runShip(cmd *cobra.Command, rootFlags *rootFlags, opts *shipOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	b, err := build.NewBuildShip(s.scenario.Planet, s.storage, s.env)
	if err != nil {
		return newCommandError(s.name, "starting ship build", err, suggestionFor(err))
	}

	parts := []struct {
		flag string
		area model.TechLevel
		id   int
	}{
		{"hull", model.HullTech, opts.hull},
		{"engine", model.EngineTech, opts.engine},
		{"beam", model.BeamTech, opts.beam},
		{"launcher", model.TorpedoTech, opts.launcher},
	}
	for _, p := range parts {
		if !cmd.Flags().Changed(p.flag) {
			continue
		}
		if !b.SetPart(p.area, p.id) {
			b.Close()
			return newCommandError(s.name, "selecting parts", fmt.Errorf("unknown %s %d", p.flag, p.id), "Use an id from the ship list.")
		}
	}
	if cmd.Flags().Changed("beams") {
		b.SetNumParts(model.BeamTech, opts.numBeams)
	}
	if cmd.Flags().Changed("launchers") {
		b.SetNumParts(model.TorpedoTech, opts.numLaunchers)
	}
	b.SetUsePartsFromStorage(!opts.noStorage)
	b.SetUseTechUpgrade(!opts.noTechUpgrade)

	if b.IsChange() {
		fmt.Fprintln(s.out, "Replaces the planet's current build order.")
	}
	return s.finish(b)
}
