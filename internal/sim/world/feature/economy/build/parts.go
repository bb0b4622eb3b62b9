package build

import (
	"sort"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// MaxStoredParts is the storage limit per slot.
const MaxStoredParts = 10000

// BuildParts buys and sells starbase component storage. Targets are kept
// only for slots that were touched.
type BuildParts struct {
	Action
	targets [model.NumTechAreas]map[int]int
}

func NewBuildParts(p *model.Planet, container cargo.Container, env Env) (*BuildParts, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if !p.HasBase() {
		return nil, gameerr.NoPermission("planet has no starbase")
	}
	b := &BuildParts{}
	b.init(p, container, env)
	b.perform = b.performParts
	return b, nil
}

func (b *BuildParts) NumExistingParts(area model.TechLevel, slot int) int {
	n, _ := b.planet.BaseStorage(area, slot)
	return n
}

func (b *BuildParts) NumParts(area model.TechLevel, slot int) int {
	if area.Valid() {
		if n, ok := b.targets[area][slot]; ok {
			return n
		}
	}
	return b.NumExistingParts(area, slot)
}

// MinParts is the lowest target: parts bought this turn may be sold, but
// not those the queued ship needs.
func (b *BuildParts) MinParts(area model.TechLevel, slot int) int {
	lowest := b.NumExistingParts(area, slot)
	if rev := b.env.Reverter; rev != nil {
		if v, ok := rev.MinBaseStorage(b.planet.ID, area, slot); ok && v < lowest {
			lowest = v
		}
	}
	if need := b.orderNeeds(area, slot); need > lowest {
		return need
	}
	return lowest
}

func (b *BuildParts) MaxParts(area model.TechLevel, slot int) int {
	if storedComponent(b.env.ShipList, b.planet, area, slot) == nil {
		return b.NumExistingParts(area, slot)
	}
	return MaxStoredParts
}

// Add changes the target of a slot by amount. The result is clamped to
// [MinParts, MaxParts]; if that changes the amount and partial is false,
// nothing happens. Returns the change applied.
func (b *BuildParts) Add(area model.TechLevel, slot, amount int, partial bool) int {
	if !area.Valid() || slot <= 0 || amount == 0 {
		return 0
	}
	cur := b.NumParts(area, slot)
	delta := clampInt(amount, min(b.MinParts(area, slot), cur)-cur, max(b.MaxParts(area, slot), cur)-cur)
	if delta != amount && !partial {
		return 0
	}
	if delta == 0 {
		return 0
	}
	target := cur + delta
	if b.targets[area] == nil {
		b.targets[area] = map[int]int{}
	}
	b.targets[area][slot] = target
	b.Update()
	return delta
}

func (b *BuildParts) Commit() error {
	if err := b.Action.Commit(); err != nil {
		return err
	}
	b.targets = [model.NumTechAreas]map[int]int{}
	b.Update()
	return nil
}

func (b *BuildParts) performParts(ex Executor) {
	for _, area := range model.TechAreas {
		slots := make([]int, 0, len(b.targets[area]))
		for slot := range b.targets[area] {
			slots = append(slots, slot)
		}
		sort.Ints(slots)

		tech := 0
		for _, slot := range slots {
			if b.targets[area][slot] <= b.NumExistingParts(area, slot) {
				continue
			}
			if c := storedComponent(b.env.ShipList, b.planet, area, slot); c != nil && c.Tech > tech {
				tech = c.Tech
			}
		}
		if tech > currentTech(b.planet, area) {
			ex.SetBaseTechLevel(area, tech)
		}

		for _, slot := range slots {
			if target := b.targets[area][slot]; target != b.NumExistingParts(area, slot) {
				ex.SetBaseStorage(area, slot, target, 0)
			}
		}
	}
}

// orderNeeds is the number of parts of a slot the queued ship will use.
func (b *BuildParts) orderNeeds(area model.TechLevel, slot int) int {
	o := b.planet.BaseBuildOrder()
	if o.IsEmpty() {
		return 0
	}
	list := b.env.ShipList
	var hull *catalogs.Hull
	if id := list.Assignments.HullAt(b.planet.Owner, o.Hull); id != 0 {
		hull = list.Hull(id)
	}
	switch area {
	case model.HullTech:
		if slot == o.Hull {
			return 1
		}
	case model.EngineTech:
		if hull != nil && slot == o.Engine {
			return hull.NumEngines
		}
	case model.BeamTech:
		if slot == o.Beam {
			return o.NumBeams
		}
	case model.TorpedoTech:
		if slot == o.Launcher {
			return o.NumLaunchers
		}
	}
	return 0
}
