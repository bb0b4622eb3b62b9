package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

func newStarbaseFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.planet.SetHasBase(false)
	f.config.StarbaseCost = cost.MustParse("T100 D100 M100")
	return f
}

func TestBuildStarbaseScenario(t *testing.T) {
	f := newStarbaseFixture(t)
	a, err := NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.True(t, a.IsBuild())
	require.Equal(t, Success, a.Status())
	require.Equal(t, "100T 100D 100M", a.CostAction().Cost().String())

	require.NoError(t, a.Commit())
	require.True(t, f.planet.IsBuildingBase())
	for _, el := range []model.Element{model.Tritanium, model.Duranium, model.Molybdenum} {
		require.Equal(t, int32(900), cargoOf(f.planet, el), el.String())
	}
	require.Equal(t, int32(1000), cargoOf(f.planet, model.Money))

	a.Update()
	require.True(t, a.CostAction().Cost().IsZero())
	require.Equal(t, Success, a.Status())
}

func TestBuildStarbaseCancelRefunds(t *testing.T) {
	f := newStarbaseFixture(t)
	f.planet.SetBuildBaseFlag(true)

	a, err := NewBuildStarbase(f.planet, f.storage, false, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, "-100T -100D -100M", a.CostAction().Cost().String())
	require.Equal(t, []SummaryItem{{Label: "Starbase (cancelled)", Multiplier: -1, Cost: cost.MustParse("-100T -100D -100M")}}, a.CostSummary().Items)
	require.NoError(t, a.Commit())
	require.False(t, f.planet.IsBuildingBase())
	require.Equal(t, int32(1100), cargoOf(f.planet, model.Tritanium))
}

func TestBuildStarbasePreconditions(t *testing.T) {
	f := newStarbaseFixture(t)

	_, err := NewBuildStarbase(f.planet, f.storage, false, f.env())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(err))

	f.planet.SetBuildBaseFlag(true)
	_, err = NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(err))

	f.planet.SetHasBase(true)
	for _, want := range []bool{true, false} {
		_, err = NewBuildStarbase(f.planet, f.storage, want, f.env())
		require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(err))
	}
}

func TestBuildStarbaseFollowsPlanet(t *testing.T) {
	f := newStarbaseFixture(t)
	a, err := NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.NoError(t, err)
	defer a.Close()

	f.planet.SetCargo(model.Duranium, 50)
	require.Equal(t, MissingResources, a.Status())
	require.Equal(t, int32(50), a.CostAction().MissingAmount(cost.Duranium))
	require.Equal(t, gameerr.ErrNoResource, gameerr.CodeOf(a.Commit()))
	require.False(t, f.planet.IsBuildingBase())

	f.planet.SetBuildBaseFlag(true)
	require.True(t, a.CostAction().Cost().IsZero())
	require.Equal(t, gameerr.ErrNoPermission, gameerr.CodeOf(a.Commit()))
	require.Equal(t, int32(1000), cargoOf(f.planet, model.Tritanium))
}
