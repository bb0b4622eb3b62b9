package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

type ammoOptions struct {
	launcher      int
	count         int
	ship          int
	limitCash     bool
	partial       bool
	noTechUpgrade bool
}

func newAmmoCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &ammoOptions{}

	cmd := &cobra.Command{
		Use:   "ammo",
		Short: "Buy torpedoes or fighters for the planet or a ship in orbit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmmo(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().IntVar(&opts.launcher, "launcher", 0, "Launcher id of the torpedo type (fighters when 0)")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Units to add (negative to sell)")
	cmd.Flags().IntVar(&opts.ship, "ship", 0, "Ship receiving the ammunition (the planet when 0)")
	cmd.Flags().BoolVar(&opts.limitCash, "limit-cash", false, "Buy as many of count as the planet can pay for")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "Apply as much of count as the limits allow")
	cmd.Flags().BoolVar(&opts.noTechUpgrade, "no-tech-upgrade", false, "Refuse torpedoes that need a tech upgrade")

	return cmd
}

func runAmmo(cmd *cobra.Command, rootFlags *rootFlags, opts *ammoOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	el := model.Fighters
	if opts.launcher != 0 {
		if s.env.ShipList.Launcher(opts.launcher) == nil {
			return newCommandError(s.name, "selecting ammunition", fmt.Errorf("unknown launcher %d", opts.launcher), "Use a launcher id from torpedoes.json.")
		}
		el = model.Torpedo(opts.launcher)
	}

	var receiver cargo.Container
	if opts.ship != 0 {
		st, err := s.ship(opts.ship)
		if err != nil {
			return err
		}
		defer st.Close()
		receiver = st
	}

	b, err := build.NewBuildAmmo(s.scenario.Planet, s.storage, receiver, s.env)
	if err != nil {
		return newCommandError(s.name, "starting ammunition purchase", err, suggestionFor(err))
	}
	b.SetUseTechUpgrade(!opts.noTechUpgrade)

	var got int
	if opts.limitCash {
		got = b.AddLimitCash(el, opts.count)
	} else {
		got = b.Add(el, opts.count, opts.partial)
	}
	fmt.Fprintf(s.out, "%s on %s: %d (allowed %d..%d)\n",
		el, b.Receiver().Name(), b.Amount(el), b.MinAmount(el), b.MaxAmount(el))
	if got != opts.count {
		s.log.Warn().Int("requested", opts.count).Int("applied", got).Msg("amount limited")
	}
	return s.finish(b)
}
