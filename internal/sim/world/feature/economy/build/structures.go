package build

import (
	"math"
	"sort"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// BuildStructures builds (or, within undo limits, scraps) planetary
// structures.
type BuildStructures struct {
	Action
	added [model.NumBuildingTypes]int
}

func NewBuildStructures(p *model.Planet, container cargo.Container, env Env) (*BuildStructures, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	b := &BuildStructures{}
	b.init(p, container, env)
	b.price = b.priceStructures
	return b, nil
}

func (b *BuildStructures) NumBuildings(t model.Building) int {
	if !t.Valid() {
		return 0
	}
	return b.planet.NumBuildings(t) + b.added[t]
}

func (b *BuildStructures) MinBuildings(t model.Building) int {
	lowest := b.planet.NumBuildings(t)
	if rev := b.env.Reverter; rev != nil {
		if v, ok := rev.MinBuildings(b.planet.ID, t); ok && v < lowest {
			lowest = v
		}
	}
	return lowest
}

// MaxBuildings is the population limit; never below what exists.
func (b *BuildStructures) MaxBuildings(t model.Building) int {
	return max(b.maxAllowed(t), b.planet.NumBuildings(t))
}

func (b *BuildStructures) maxAllowed(t model.Building) int {
	clans, _ := b.planet.Cargo(model.Colonists)
	switch t {
	case model.Mines:
		return structureLimit(int(clans), 200)
	case model.Factories:
		return structureLimit(int(clans), 100)
	case model.Defense:
		return structureLimit(int(clans), 50)
	case model.BaseDefense:
		if b.planet.HasBase() {
			return b.env.Config.MaximumDefenseOnBase
		}
	}
	return 0
}

func structureLimit(clans, limit int) int {
	if clans <= limit {
		return max(clans, 0)
	}
	return limit + int(math.Sqrt(float64(clans-limit)))
}

// Add changes the count of a structure type by count, clamped to
// [MinBuildings, MaxBuildings]. Without partial, a clamped request is
// dropped. Returns the change applied.
func (b *BuildStructures) Add(t model.Building, count int, partial bool) int {
	if !t.Valid() || count == 0 {
		return 0
	}
	cur := b.NumBuildings(t)
	delta := clampInt(count, min(b.MinBuildings(t), cur)-cur, max(b.MaxBuildings(t), cur)-cur)
	if delta != count && !partial {
		return 0
	}
	if delta == 0 {
		return 0
	}
	b.added[t] += delta
	b.Update()
	return delta
}

// AddLimitCash adds up to count structures, as many as the container can
// pay for. Negative counts behave like a partial Add.
func (b *BuildStructures) AddLimitCash(t model.Building, count int) int {
	if !t.Valid() || count <= 0 {
		return b.Add(t, count, true)
	}
	room := max(b.MaxBuildings(t)-b.NumBuildings(t), 0)
	limit := min(count, room)
	base, _ := b.priceStructures()
	unit := b.env.Config.BuildingCost(t)
	n := sort.Search(limit+1, func(i int) bool {
		return !affordable(b.costAction, base.Add(unit.Scale(int32(i))))
	}) - 1
	if n <= 0 {
		return 0
	}
	return b.Add(t, n, false)
}

// DoStandardAutoBuild builds toward the planet's autobuild goals. Types
// with equal speed advance together, each adding up to speed units per
// round, faster groups first. Returns the number of structures added.
func (b *BuildStructures) DoStandardAutoBuild() int {
	var speeds []int
	groups := map[int][]model.Building{}
	for _, t := range model.Buildings {
		sp := b.planet.AutobuildSpeed(t)
		if sp <= 0 {
			continue
		}
		if groups[sp] == nil {
			speeds = append(speeds, sp)
		}
		groups[sp] = append(groups[sp], t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(speeds)))

	total := 0
	for _, sp := range speeds {
		for {
			progress := false
			for _, t := range groups[sp] {
				want := min(sp, b.planet.AutobuildGoal(t)-b.NumBuildings(t))
				if want <= 0 {
					continue
				}
				if n := b.AddLimitCash(t, want); n > 0 {
					total += n
					progress = true
				}
			}
			if !progress {
				break
			}
		}
	}
	return total
}

func (b *BuildStructures) priceStructures() (cost.Cost, Impediments) {
	var c cost.Cost
	for _, t := range model.Buildings {
		if n := b.added[t]; n != 0 {
			c = c.Add(b.env.Config.BuildingCost(t).Scale(int32(n)))
		}
	}
	return c, 0
}

func (b *BuildStructures) CostSummary() Summary {
	var s Summary
	for _, t := range model.Buildings {
		if n := b.added[t]; n != 0 {
			s.add(t.String(), n, b.env.Config.BuildingCost(t).Scale(int32(n)))
		}
	}
	return s
}

func (b *BuildStructures) Commit() error {
	b.Update()
	for _, t := range model.Buildings {
		if n := b.NumBuildings(t); b.added[t] > 0 && n > b.MaxBuildings(t) {
			return gameerr.Newf(gameerr.ErrNoPermission, "too many %s for this population", t)
		}
	}
	return b.commit(func() error {
		for _, t := range model.Buildings {
			if b.added[t] != 0 {
				b.planet.SetNumBuildings(t, b.planet.NumBuildings(t)+b.added[t])
			}
		}
		b.added = [model.NumBuildingTypes]int{}
		return nil
	})
}
