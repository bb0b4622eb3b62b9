package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
)

type partsOptions struct {
	area          string
	slot          int
	amount        int
	partial       bool
	noTechUpgrade bool
}

func newPartsCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &partsOptions{}

	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Buy or sell starship parts in starbase storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParts(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.area, "area", "", "Part area: hull, engine, beam or torpedo")
	cmd.Flags().IntVar(&opts.slot, "slot", 0, "Component id, or truehull slot for hulls")
	cmd.Flags().IntVar(&opts.amount, "amount", 0, "Parts to add (negative to sell)")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "Apply as much of the amount as the limits allow")
	cmd.Flags().BoolVar(&opts.noTechUpgrade, "no-tech-upgrade", false, "Refuse parts that need a tech upgrade")

	return cmd
}

func runParts(cmd *cobra.Command, rootFlags *rootFlags, opts *partsOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	area, err := parseArea(s.name, opts.area)
	if err != nil {
		return err
	}
	b, err := build.NewBuildParts(s.scenario.Planet, s.storage, s.env)
	if err != nil {
		return newCommandError(s.name, "starting parts transaction", err, suggestionFor(err))
	}
	b.SetUseTechUpgrade(!opts.noTechUpgrade)

	got := b.Add(area, opts.slot, opts.amount, opts.partial)
	fmt.Fprintf(s.out, "%s slot %d: %d -> %d (allowed %d..%d)\n",
		area, opts.slot, b.NumExistingParts(area, opts.slot), b.NumParts(area, opts.slot),
		b.MinParts(area, opts.slot), b.MaxParts(area, opts.slot))
	if got != opts.amount {
		s.log.Warn().Int("requested", opts.amount).Int("applied", got).Msg("amount limited")
	}
	return s.finish(b)
}
