package build

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

func TestBuildAmmoOnPlanet(t *testing.T) {
	f := newFixture(t)
	f.planet.SetCargo(model.Money, 10000)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, []model.Element{model.Fighters, model.Torpedo(1), model.Torpedo(3)}, a.Types())
	require.Equal(t, 10, a.Add(model.Torpedo(1), 10, false))
	require.Equal(t, "10T 10D 10M 50$", a.CostAction().Cost().String())

	require.Equal(t, 0, a.Add(model.Fighters, 100, false))
	require.Equal(t, 60, a.Add(model.Fighters, 100, true))
	require.Equal(t, 0, a.Add(model.Neutronium, 1, true))

	require.NoError(t, a.Commit())
	require.Equal(t, int32(10), cargoOf(f.planet, model.Torpedo(1)))
	require.Equal(t, int32(60), cargoOf(f.planet, model.Fighters))
	require.Equal(t, int32(1000-10-180), cargoOf(f.planet, model.Tritanium))
	require.Equal(t, int32(10000-50-6000), cargoOf(f.planet, model.Money))
	require.True(t, a.CostAction().Cost().IsZero())
}

func TestBuildAmmoPlanetStorageIsCapped(t *testing.T) {
	f := newFixture(t)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	torp := model.Torpedo(1)
	require.Equal(t, cargo.MaxStoredTorpedoes, a.MaxAmount(torp))
	require.Equal(t, 0, a.Add(torp, 858993460, false))
	require.True(t, a.CostAction().Cost().IsZero())

	require.Equal(t, cargo.MaxStoredTorpedoes, a.Add(torp, math.MaxInt, true))
	require.Equal(t, "10000T 10000D 10000M 50000$", a.CostAction().Cost().String())
	require.Equal(t, MissingResources, a.Status())
	require.Equal(t, gameerr.ErrNoResource, gameerr.CodeOf(a.Commit()))
	require.Equal(t, int32(0), cargoOf(f.planet, torp))
	require.Equal(t, int32(1000), cargoOf(f.planet, model.Money))

	require.Equal(t, -cargo.MaxStoredTorpedoes, a.Add(torp, math.MinInt, true))
	require.Equal(t, 0, a.Amount(torp))
	require.Equal(t, Success, a.Status())
}

func TestBuildAmmoAddLimitCashPaysTechOnce(t *testing.T) {
	f := newFixture(t)
	f.planet.SetCargo(model.Money, 400)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 10, a.AddLimitCash(model.Torpedo(3), 100))
	require.Equal(t, "10T 10D 10M 400$", a.CostAction().Cost().String())
	require.Equal(t, []string{"Torpedo tech 1 to 3", "Mark 3 torpedoes"}, labels(a.CostSummary()))

	require.NoError(t, a.Commit())
	tech, _ := f.planet.BaseTechLevel(model.TorpedoTech)
	require.Equal(t, 3, tech)
	require.Equal(t, int32(0), cargoOf(f.planet, model.Money))
}

func TestBuildAmmoAddLimitCashCannotAffordTech(t *testing.T) {
	f := newFixture(t)
	f.planet.SetCargo(model.Money, 299)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 0, a.AddLimitCash(model.Torpedo(3), 100))
	require.Equal(t, 59, a.AddLimitCash(model.Torpedo(1), 100))
	require.Equal(t, Success, a.Status())
}

func TestBuildAmmoTechLimits(t *testing.T) {
	f := newFixture(t)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	a.SetUseTechUpgrade(false)
	require.Equal(t, 0, a.MaxAmount(model.Torpedo(3)))
	require.Equal(t, 0, a.Add(model.Torpedo(3), 1, true))

	a.SetUseTechUpgrade(true)
	f.key.Limits[model.TorpedoTech] = 2
	require.Equal(t, 0, a.MaxAmount(model.Torpedo(3)))
	require.Greater(t, a.MaxAmount(model.Torpedo(1)), 0)

	f.key.Limits[model.TorpedoTech] = 0
	require.Equal(t, 1, a.Add(model.Torpedo(3), 1, false))
	a.SetUseTechUpgrade(false)
	require.Equal(t, DisabledTech, a.Status())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(a.Commit()))
}

func TestBuildAmmoIntoShip(t *testing.T) {
	f := newFixture(t)
	sh := model.NewShip(17, owner, 5)
	sh.Launcher = 1
	sh.NumLaunchers = 2
	sh.SetCargo(model.Tritanium, 30)
	ship := cargo.NewShipStorage(sh, f.list)
	defer ship.Close()

	a, err := NewBuildAmmo(f.planet, f.storage, ship, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 20, a.MaxAmount(model.Torpedo(1)))
	require.Equal(t, 0, a.MaxAmount(model.Fighters))
	require.Equal(t, 20, a.AddLimitCash(model.Torpedo(1), 50))
	require.Equal(t, cost.MustParse("20T 20D 20M 100$"), a.CostAction().Cost())

	require.NoError(t, a.Commit())
	require.Equal(t, int32(20), sh.Cargo(model.Torpedo(1)))
	require.Equal(t, int32(0), cargoOf(f.planet, model.Torpedo(1)))
	require.Equal(t, int32(900), cargoOf(f.planet, model.Money))
}

func TestBuildAmmoSellLimitedByUndo(t *testing.T) {
	f := newFixture(t)
	f.planet.SetCargo(model.Fighters, 10)
	a, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 10, a.MinAmount(model.Fighters))
	require.Equal(t, 0, a.Add(model.Fighters, -1, true))
}

func TestBuildAmmoRequiresBase(t *testing.T) {
	f := newFixture(t)
	f.planet.SetHasBase(false)
	_, err := NewBuildAmmo(f.planet, f.storage, nil, f.env())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(err))
}
