package build

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// BuildStarbase orders or cancels construction of a starbase.
type BuildStarbase struct {
	Action
	wantBase bool
}

func NewBuildStarbase(p *model.Planet, container cargo.Container, wantBase bool, env Env) (*BuildStarbase, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if p.HasBase() {
		return nil, gameerr.NoPermission("planet already has a starbase")
	}
	if p.IsBuildingBase() == wantBase {
		if wantBase {
			return nil, gameerr.NoPermission("starbase is already being built")
		}
		return nil, gameerr.NoPermission("no starbase is being built")
	}
	b := &BuildStarbase{wantBase: wantBase}
	b.init(p, container, env)
	b.price = b.priceStarbase
	return b, nil
}

func (b *BuildStarbase) IsBuild() bool { return b.wantBase }

// pending reports whether the planet still differs from the request.
func (b *BuildStarbase) pending() bool {
	return !b.planet.HasBase() && b.planet.IsBuildingBase() != b.wantBase
}

func (b *BuildStarbase) priceStarbase() (cost.Cost, Impediments) {
	if !b.pending() {
		return cost.Cost{}, 0
	}
	if b.wantBase {
		return b.env.Config.StarbaseCost, 0
	}
	return b.env.Config.StarbaseCost.Neg(), 0
}

func (b *BuildStarbase) CostSummary() Summary {
	var s Summary
	if c, _ := b.priceStarbase(); !c.IsZero() {
		label := "Starbase"
		n := 1
		if !b.wantBase {
			label = "Starbase (cancelled)"
			n = -1
		}
		s.add(label, n, c)
	}
	return s
}

func (b *BuildStarbase) Commit() error {
	b.Update()
	if !b.pending() {
		return gameerr.NoPermission("starbase request no longer applies")
	}
	return b.commit(func() error {
		b.planet.SetBuildBaseFlag(b.wantBase)
		return nil
	})
}
