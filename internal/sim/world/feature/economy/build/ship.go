package build

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// BuildShip prepares a ship build order and buys the parts it needs.
// The order's Hull field holds a hull id here; on the planet it is stored
// as the owner's truehull index.
type BuildShip struct {
	Action
	order               model.ShipBuildOrder
	usePartsFromStorage bool
}

// NewBuildShip starts from the planet's current order, repairing fields that
// do not refer to usable components.
func NewBuildShip(p *model.Planet, container cargo.Container, env Env) (*BuildShip, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if !p.HasBase() {
		return nil, gameerr.NoPermission("planet has no starbase")
	}
	b := &BuildShip{}
	b.init(p, container, env)
	b.perform = b.performShip

	o := p.BaseBuildOrder()
	if !o.IsEmpty() {
		o.Hull = env.ShipList.Assignments.HullAt(p.Owner, o.Hull)
	}
	b.order = b.normalize(o)
	return b, nil
}

func (b *BuildShip) normalize(o model.ShipBuildOrder) model.ShipBuildOrder {
	list := b.env.ShipList
	hull := list.Hull(o.Hull)
	if hull == nil || list.Assignments.Index(b.planet.Owner, o.Hull) == 0 {
		return b.defaultOrder()
	}
	if list.Engine(o.Engine) == nil {
		o.Engine = b.bestPart(model.EngineTech)
	}
	if list.Beam(o.Beam) == nil {
		o.Beam = b.bestPart(model.BeamTech)
	}
	if list.Launcher(o.Launcher) == nil {
		o.Launcher = b.bestPart(model.TorpedoTech)
	}
	o.NumBeams = clampInt(o.NumBeams, 0, hull.MaxBeams)
	o.NumLaunchers = clampInt(o.NumLaunchers, 0, hull.MaxLaunchers)
	return o
}

// defaultOrder picks the first hull the owner may build and the best parts
// the base's current tech allows.
func (b *BuildShip) defaultOrder() model.ShipBuildOrder {
	list := b.env.ShipList
	owner := b.planet.Owner
	for slot := 1; slot <= list.Assignments.NumSlots(owner); slot++ {
		h := list.Hull(list.Assignments.HullAt(owner, slot))
		if h == nil || h.Tech > b.env.maxTech(model.HullTech) {
			continue
		}
		return model.ShipBuildOrder{
			Hull:         h.ID,
			Engine:       b.bestPart(model.EngineTech),
			Beam:         b.bestPart(model.BeamTech),
			NumBeams:     h.MaxBeams,
			Launcher:     b.bestPart(model.TorpedoTech),
			NumLaunchers: h.MaxLaunchers,
		}
	}
	return model.ShipBuildOrder{}
}

func (b *BuildShip) bestPart(area model.TechLevel) int {
	if id := b.env.ShipList.BestComponent(area, currentTech(b.planet, area)); id != 0 {
		return id
	}
	return 1
}

func (b *BuildShip) BuildOrder() model.ShipBuildOrder { return b.order }

func (b *BuildShip) hull() *catalogs.Hull { return b.env.ShipList.Hull(b.order.Hull) }

// SetPart selects the hull or a component type. Unknown ids are ignored.
func (b *BuildShip) SetPart(area model.TechLevel, id int) bool {
	list := b.env.ShipList
	switch area {
	case model.HullTech:
		h := list.Hull(id)
		if h == nil {
			return false
		}
		b.order.Hull = id
		b.order.NumBeams = h.MaxBeams
		b.order.NumLaunchers = h.MaxLaunchers
		if b.order.Beam == 0 {
			b.order.Beam = b.bestPart(model.BeamTech)
		}
		if b.order.Launcher == 0 {
			b.order.Launcher = b.bestPart(model.TorpedoTech)
		}
	case model.EngineTech:
		if list.Engine(id) == nil {
			return false
		}
		b.order.Engine = id
	case model.BeamTech:
		if list.Beam(id) == nil {
			return false
		}
		b.order.Beam = id
	case model.TorpedoTech:
		if list.Launcher(id) == nil {
			return false
		}
		b.order.Launcher = id
	default:
		return false
	}
	b.Update()
	return true
}

// SetNumParts sets the number of beams or launchers, clamped to the hull.
func (b *BuildShip) SetNumParts(area model.TechLevel, n int) {
	h := b.hull()
	if h == nil {
		return
	}
	switch area {
	case model.BeamTech:
		b.order.NumBeams = clampInt(n, 0, h.MaxBeams)
	case model.TorpedoTech:
		b.order.NumLaunchers = clampInt(n, 0, h.MaxLaunchers)
	default:
		return
	}
	b.Update()
}

// AddParts changes the number of beams or launchers and returns the change
// applied.
func (b *BuildShip) AddParts(area model.TechLevel, delta int) int {
	var before int
	switch area {
	case model.BeamTech:
		before = b.order.NumBeams
	case model.TorpedoTech:
		before = b.order.NumLaunchers
	default:
		return 0
	}
	b.SetNumParts(area, before+delta)
	if area == model.BeamTech {
		return b.order.NumBeams - before
	}
	return b.order.NumLaunchers - before
}

// SetUsePartsFromStorage selects whether stored parts are used before
// buying new ones.
func (b *BuildShip) SetUsePartsFromStorage(v bool) {
	if b.usePartsFromStorage == v {
		return
	}
	b.usePartsFromStorage = v
	b.Update()
}

func (b *BuildShip) IsUsePartsFromStorage() bool { return b.usePartsFromStorage }

// IsChange reports whether committing would replace an existing order with
// a different one.
func (b *BuildShip) IsChange() bool {
	old := b.planet.BaseBuildOrder().Canonical()
	if old.IsEmpty() {
		return false
	}
	return b.plannedOrder().Canonical() != old
}

// plannedOrder is the order as stored on the planet.
func (b *BuildShip) plannedOrder() model.ShipBuildOrder {
	o := b.order
	o.Hull = b.env.ShipList.Assignments.Index(b.planet.Owner, o.Hull)
	return o
}

func (b *BuildShip) Commit() error {
	if b.hull() == nil {
		return gameerr.NoPermission("no hull selected")
	}
	o := b.plannedOrder()
	if o.Hull == 0 {
		return gameerr.NoPermission("hull cannot be built by this player")
	}
	if err := b.Action.Commit(); err != nil {
		return err
	}
	b.planet.SetBaseBuildOrder(o.Canonical())
	b.usePartsFromStorage = true
	b.Update()
	return nil
}

func (b *BuildShip) performShip(ex Executor) {
	h := b.hull()
	if h == nil {
		return
	}
	list := b.env.ShipList
	if slot := list.Assignments.Index(b.planet.Owner, h.ID); slot != 0 {
		b.performPart(ex, model.HullTech, slot, h.Tech, 1)
	} else {
		ex.AccountHull(h.ID, 1, 0)
	}
	if e := list.Engine(b.order.Engine); e != nil && h.NumEngines > 0 {
		b.performPart(ex, model.EngineTech, e.ID, e.Tech, h.NumEngines)
	}
	if bm := list.Beam(b.order.Beam); bm != nil && b.order.NumBeams > 0 {
		b.performPart(ex, model.BeamTech, bm.ID, bm.Tech, b.order.NumBeams)
	}
	if l := list.Launcher(b.order.Launcher); l != nil && b.order.NumLaunchers > 0 {
		b.performPart(ex, model.TorpedoTech, l.ID, l.Tech, b.order.NumLaunchers)
	}
	ex.AccountFighterBay(h.NumBays)
}

// performPart adds n parts to storage, upgrading tech first if needed.
func (b *BuildShip) performPart(ex Executor, area model.TechLevel, slot, tech, n int) {
	if tech > currentTech(b.planet, area) {
		ex.SetBaseTechLevel(area, tech)
	}
	have, _ := b.planet.BaseStorage(area, slot)
	free := 0
	if b.usePartsFromStorage {
		free = min(have, n)
	}
	ex.SetBaseStorage(area, slot, have+n-free, free)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
