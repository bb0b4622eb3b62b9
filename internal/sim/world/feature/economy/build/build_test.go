package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/tuning"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

const owner = 1

type fixture struct {
	list    *catalogs.ShipList
	config  *tuning.HostConfiguration
	planet  *model.Planet
	storage *cargo.PlanetStorage
	key     *model.Key
}

// newFixture sets up a tech 1 starbase owned by player 1 with plenty of
// resources. Player 1 can build hull 5 from truehull slot 1; hull 6 is
// foreign.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	list := catalogs.New()
	list.AddHull(catalogs.Hull{
		Component:    catalogs.Component{ID: 5, Name: "Scout", Tech: 2, Cost: cost.MustParse("10T 15$")},
		NumEngines:   3,
		MaxBeams:     4,
		MaxLaunchers: 5,
		MaxCargo:     50,
	})
	list.AddHull(catalogs.Hull{
		Component:  catalogs.Component{ID: 6, Name: "Alien Carrier", Tech: 3, Cost: cost.MustParse("50T 100$")},
		NumEngines: 2,
		MaxBeams:   2,
		NumBays:    4,
	})
	list.AssignHull(owner, 1, 5)
	list.AddEngine(catalogs.Component{ID: 1, Name: "Drive 1", Tech: 1, Cost: cost.MustParse("1T 1D 1M 1$")})
	list.AddEngine(catalogs.Component{ID: 2, Name: "Drive 2", Tech: 2, Cost: cost.MustParse("2T 2D 2M 5$")})
	list.AddBeam(catalogs.Component{ID: 1, Name: "Laser", Tech: 1, Cost: cost.MustParse("1M")})
	list.AddBeam(catalogs.Component{ID: 2, Name: "Disruptor", Tech: 3, Cost: cost.MustParse("2M 1$")})
	list.AddLauncher(catalogs.Launcher{
		Component:   catalogs.Component{ID: 1, Name: "Mark 1", Tech: 1, Cost: cost.MustParse("1M 10S")},
		TorpedoCost: cost.MustParse("1T 1D 1M 5$"),
	})
	list.AddLauncher(catalogs.Launcher{
		Component:   catalogs.Component{ID: 3, Name: "Mark 3", Tech: 3, Cost: cost.MustParse("2M 20S")},
		TorpedoCost: cost.MustParse("1T 1D 1M 10$"),
	})

	p := model.NewPlanet(42, owner)
	p.SetHasBase(true)
	for _, el := range []model.Element{model.Tritanium, model.Duranium, model.Molybdenum, model.Supplies, model.Money} {
		p.SetCargo(el, 1000)
	}

	config := tuning.Defaults()
	f := &fixture{
		list:    list,
		config:  config,
		planet:  p,
		storage: cargo.NewPlanetStorage(p, config, nil),
		key:     model.NewRegistrationKey(true),
	}
	t.Cleanup(f.storage.Close)
	return f
}

func (f *fixture) env() Env {
	return Env{ShipList: f.list, Config: f.config, Key: f.key}
}

func cargoOf(p *model.Planet, el model.Element) int32 {
	n, _ := p.Cargo(el)
	return n
}

func TestCountingExecutorTech(t *testing.T) {
	f := newFixture(t)

	ex := NewCountingExecutor(f.planet, f.env(), true)
	ex.SetBaseTechLevel(model.BeamTech, 3)
	require.Equal(t, "300$", ex.Cost.String())
	require.Zero(t, ex.Impediments)

	ex = NewCountingExecutor(f.planet, f.env(), false)
	ex.SetBaseTechLevel(model.BeamTech, 3)
	require.True(t, ex.Impediments.Has(NeedDisabledTech))

	f.key.Limits[model.BeamTech] = 2
	ex = NewCountingExecutor(f.planet, f.env(), true)
	ex.SetBaseTechLevel(model.BeamTech, 3)
	require.True(t, ex.Impediments.Has(NeedInaccessibleTech))
	require.False(t, ex.Impediments.Has(NeedDisabledTech))
}

func TestCountingExecutorTechRefund(t *testing.T) {
	f := newFixture(t)
	f.planet.SetBaseTechLevel(model.EngineTech, 3)

	ex := NewCountingExecutor(f.planet, f.env(), false)
	ex.SetBaseTechLevel(model.EngineTech, 1)
	require.Equal(t, "-300$", ex.Cost.String())
	require.Zero(t, ex.Impediments)
}

func TestCountingExecutorStorageAndHull(t *testing.T) {
	f := newFixture(t)
	f.planet.SetBaseStorage(model.BeamTech, 1, 2)

	ex := NewCountingExecutor(f.planet, f.env(), true)
	ex.SetBaseStorage(model.BeamTech, 1, 5, 0)
	ex.SetBaseStorage(model.HullTech, 1, 1, 0)
	require.Equal(t, "10T 3M 15$", ex.Cost.String())

	ex.AccountHull(6, 1, 0)
	require.True(t, ex.Impediments.Has(NeedForeignHull))
	require.Equal(t, "60T 3M 115$", ex.Cost.String())
}

func TestExecutingExecutor(t *testing.T) {
	f := newFixture(t)

	ex := NewExecutingExecutor(f.planet)
	ex.SetBaseTechLevel(model.HullTech, 4)
	ex.SetBaseStorage(model.EngineTech, 2, 7, 0)
	ex.AccountHull(6, 0, 0)
	ex.AccountFighterBay(10)

	tech, _ := f.planet.BaseTechLevel(model.HullTech)
	require.Equal(t, 4, tech)
	n, _ := f.planet.BaseStorage(model.EngineTech, 2)
	require.Equal(t, 7, n)

	require.PanicsWithError(t, "E_INTERNAL: cannot build foreign hull 6", func() {
		ex.AccountHull(6, 1, 0)
	})
}

func TestBillingExecutor(t *testing.T) {
	f := newFixture(t)
	f.planet.SetBaseStorage(model.EngineTech, 1, 2)

	ex := NewBillingExecutor(f.planet, f.env())
	ex.SetBaseTechLevel(model.HullTech, 1)
	ex.SetBaseTechLevel(model.HullTech, 2)
	ex.SetBaseStorage(model.EngineTech, 1, 3, 2)
	ex.AccountFighterBay(4)

	require.Equal(t, []SummaryItem{
		{Label: "Hull tech 1 to 2", Multiplier: 1, Cost: cost.MustParse("100$")},
		{Label: "Drive 1 (from storage)", Multiplier: 2},
		{Label: "Drive 1", Multiplier: 1, Cost: cost.MustParse("1T 1D 1M 1$")},
		{Label: "Fighter bays", Multiplier: 4},
	}, ex.Summary.Items)
	require.Equal(t, "1T 1D 1M 101$", ex.Summary.Total().String())
}

func TestActionSubscribesLazily(t *testing.T) {
	f := newFixture(t)
	f.planet.SetHasBase(false)
	base := f.planet.OnChange().NumConnections()

	a, err := NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.NoError(t, err)
	require.Equal(t, base, f.planet.OnChange().NumConnections())
	require.Zero(t, f.config.OnChange().NumConnections())

	a.Update()
	require.Equal(t, base+1, f.planet.OnChange().NumConnections())
	require.Equal(t, 1, f.config.OnChange().NumConnections())
	require.Equal(t, 1, f.list.OnChange().NumConnections())

	a.Close()
	require.Equal(t, base, f.planet.OnChange().NumConnections())
	require.Zero(t, f.config.OnChange().NumConnections())
}

func TestActionNotificationIsNotReentrant(t *testing.T) {
	f := newFixture(t)
	a, err := NewBuildParts(f.planet, f.storage, f.env())
	require.NoError(t, err)
	defer a.Close()

	calls := 0
	conn := a.OnChange().Connect(func() {
		calls++
		require.Equal(t, Success, a.Status())
	})
	defer conn.Disconnect()

	a.Update()
	require.Equal(t, 1, calls)

	f.planet.SetCargo(model.Money, 500)
	require.Greater(t, calls, 1)
}

func TestActionFollowsConfiguration(t *testing.T) {
	f := newFixture(t)
	f.planet.SetHasBase(false)
	a, err := NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, Success, a.Status())
	f.config.Modify(func(c *tuning.HostConfiguration) {
		c.StarbaseCost = cost.MustParse("5000$")
	})
	require.Equal(t, "5000$", a.CostAction().Cost().String())
	require.Equal(t, MissingResources, a.Status())
	require.False(t, a.IsValid())
	require.Equal(t, gameerr.ErrNoResource, gameerr.CodeOf(a.Commit()))
}

func TestEnvRequiresCatalogs(t *testing.T) {
	f := newFixture(t)
	_, err := NewBuildParts(f.planet, f.storage, Env{Config: f.config})
	require.Equal(t, gameerr.ErrBadRequest, gameerr.CodeOf(err))
}

func TestActionCostIsCurrentBeforeStatus(t *testing.T) {
	f := newFixture(t)
	f.planet.SetHasBase(false)
	f.planet.SetCargo(model.Money, 10)
	f.config.StarbaseCost = cost.MustParse("402T 120D 340M 900$")
	a, err := NewBuildStarbase(f.planet, f.storage, true, f.env())
	require.NoError(t, err)
	defer a.Close()

	ca := a.CostAction()
	require.Equal(t, "402T 120D 340M 900$", ca.Cost().String())
	require.Equal(t, "890$", ca.MissingAmountAsCost().String())
	require.Equal(t, MissingResources, a.Status())
}
