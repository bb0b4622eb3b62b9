package main

import (
	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
)

type starbaseOptions struct {
	cancel bool
}

func newStarbaseCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &starbaseOptions{}

	cmd := &cobra.Command{
		Use:   "starbase",
		Short: "Order a starbase, or cancel a pending order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStarbase(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.cancel, "cancel", false, "Cancel the pending starbase order")

	return cmd
}

func runStarbase(cmd *cobra.Command, rootFlags *rootFlags, opts *starbaseOptions) error {
	s, err := openSession(cmd, rootFlags)
	if err != nil {
		return err
	}
	defer s.close()

	b, err := build.NewBuildStarbase(s.scenario.Planet, s.storage, !opts.cancel, s.env)
	if err != nil {
		return newCommandError(s.name, "starting starbase transaction", err, "Only planets without a starbase can order one.")
	}
	return s.finish(b)
}
