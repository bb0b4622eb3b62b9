package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/undo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

func TestTechUpgradeRaise(t *testing.T) {
	f := newFixture(t)
	f.planet.SetCargo(model.Money, 2000)
	a, err := NewTechUpgrade(f.planet, f.storage, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.True(t, a.SetTechLevel(model.BeamTech, 5))
	require.Equal(t, 5, a.TechLevel(model.BeamTech))
	require.Equal(t, "1000$", a.CostAction().Cost().String())
	require.Equal(t, []string{"Beam tech 1 to 5"}, labels(a.CostSummary()))

	require.NoError(t, a.Commit())
	tech, _ := f.planet.BaseTechLevel(model.BeamTech)
	require.Equal(t, 5, tech)
	require.Equal(t, int32(1000), cargoOf(f.planet, model.Money))

	// Without a reverter the current level cannot be undone.
	require.False(t, a.SetTechLevel(model.BeamTech, 3))
	require.Equal(t, 5, a.TechLevel(model.BeamTech))
	require.True(t, a.CostAction().Cost().IsZero())
}

func TestTechUpgradeLowerRefunds(t *testing.T) {
	f := newFixture(t)
	rev := undo.NewTurnStartReverter(func(int) *model.Planet { return f.planet })
	rev.Remember(f.planet)
	f.planet.SetBaseTechLevel(model.BeamTech, 5)

	env := f.env()
	env.Reverter = rev
	a, err := NewTechUpgrade(f.planet, f.storage, env)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 1, a.MinTechLevel(model.BeamTech))
	require.True(t, a.SetTechLevel(model.BeamTech, 2))
	require.Equal(t, "-900$", a.CostAction().Cost().String())
	require.Equal(t, Success, a.Status())
}

func TestTechUpgradeKeepsStoredPartsUsable(t *testing.T) {
	f := newFixture(t)
	f.planet.SetBaseStorage(model.BeamTech, 2, 1)
	rev := undo.NewTurnStartReverter(func(int) *model.Planet { return f.planet })
	rev.Remember(f.planet)
	f.planet.SetBaseTechLevel(model.BeamTech, 5)

	env := f.env()
	env.Reverter = rev
	a, err := NewTechUpgrade(f.planet, f.storage, env)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 3, a.MinTechLevel(model.BeamTech))
	require.False(t, a.SetTechLevel(model.BeamTech, 2))
	require.Equal(t, 3, a.TechLevel(model.BeamTech))
	require.Equal(t, "-700$", a.CostAction().Cost().String())
	require.True(t, a.SetTechLevel(model.BeamTech, 4))
	require.Equal(t, "-400$", a.CostAction().Cost().String())
}

func TestTechUpgradeKeyCeiling(t *testing.T) {
	f := newFixture(t)
	f.key.Registered = false
	f.planet.SetCargo(model.Money, 2000)
	a, err := NewTechUpgrade(f.planet, f.storage, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.False(t, a.SetTechLevel(model.HullTech, 8))
	require.Equal(t, 6, a.TechLevel(model.HullTech))
	require.Equal(t, Success, a.Status())

	a.SetUseTechUpgrade(false)
	require.Equal(t, DisabledTech, a.Status())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(a.Commit()))
}
