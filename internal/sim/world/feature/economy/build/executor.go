package build

import (
	"strconv"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Executor receives the changes a build action wants to make to a planet.
// The same sequence of calls is priced, applied or itemized depending on
// the implementation.
//
// Hull storage slots are truehull indexes of the planet owner; the other
// areas use component ids.
type Executor interface {
	SetBaseTechLevel(area model.TechLevel, level int)
	// SetBaseStorage sets the number of stored parts. freeCount of them
	// come from parts already in storage.
	SetBaseStorage(area model.TechLevel, slot, newCount, freeCount int)
	// AccountHull prices a hull the owner cannot build.
	AccountHull(hullID, count, freeCount int)
	AccountFighterBay(count int)
}

// Impediments are reasons why a priced build cannot be committed.
type Impediments uint8

const (
	NeedInaccessibleTech Impediments = 1 << iota
	NeedForeignHull
	NeedDisabledTech
)

func (i Impediments) Has(x Impediments) bool { return i&x != 0 }

// CountingExecutor sums the cost of the calls relative to the planet's
// current state. It does not modify anything.
type CountingExecutor struct {
	planet         *model.Planet
	env            Env
	useTechUpgrade bool

	Cost        cost.Cost
	Impediments Impediments
}

func NewCountingExecutor(p *model.Planet, env Env, useTechUpgrade bool) *CountingExecutor {
	return &CountingExecutor{planet: p, env: env, useTechUpgrade: useTechUpgrade}
}

func (e *CountingExecutor) SetBaseTechLevel(area model.TechLevel, level int) {
	cur := currentTech(e.planet, area)
	if level > cur {
		if !e.useTechUpgrade {
			e.Impediments |= NeedDisabledTech
		} else if level > e.env.maxTech(area) {
			e.Impediments |= NeedInaccessibleTech
		}
	}
	e.Cost = e.Cost.Add(e.env.Config.TechCost(area, cur, level))
}

func (e *CountingExecutor) SetBaseStorage(area model.TechLevel, slot, newCount, freeCount int) {
	have, _ := e.planet.BaseStorage(area, slot)
	if c := storedComponent(e.env.ShipList, e.planet, area, slot); c != nil {
		e.Cost = e.Cost.Add(c.Cost.Scale(int32(newCount - have)))
	}
}

func (e *CountingExecutor) AccountHull(hullID, count, freeCount int) {
	if count > 0 {
		e.Impediments |= NeedForeignHull
	}
	if h := e.env.ShipList.Hull(hullID); h != nil {
		e.Cost = e.Cost.Add(h.Cost.Scale(int32(count - freeCount)))
	}
}

func (e *CountingExecutor) AccountFighterBay(int) {}

// ExecutingExecutor applies the calls to the planet.
type ExecutingExecutor struct {
	planet *model.Planet
}

func NewExecutingExecutor(p *model.Planet) *ExecutingExecutor {
	return &ExecutingExecutor{planet: p}
}

func (e *ExecutingExecutor) SetBaseTechLevel(area model.TechLevel, level int) {
	e.planet.SetBaseTechLevel(area, level)
}

func (e *ExecutingExecutor) SetBaseStorage(area model.TechLevel, slot, newCount, _ int) {
	e.planet.SetBaseStorage(area, slot, newCount)
}

func (e *ExecutingExecutor) AccountHull(hullID, count, _ int) {
	if count > 0 {
		panic(gameerr.Newf(gameerr.ErrInternal, "cannot build foreign hull %d", hullID))
	}
}

func (e *ExecutingExecutor) AccountFighterBay(int) {}

// BillingExecutor itemizes the calls for display.
type BillingExecutor struct {
	planet  *model.Planet
	env     Env
	Summary Summary
}

func NewBillingExecutor(p *model.Planet, env Env) *BillingExecutor {
	return &BillingExecutor{planet: p, env: env}
}

func (e *BillingExecutor) SetBaseTechLevel(area model.TechLevel, level int) {
	cur := currentTech(e.planet, area)
	if level == cur {
		return
	}
	e.Summary.add(techLabel(area, cur, level), 1, e.env.Config.TechCost(area, cur, level))
}

func (e *BillingExecutor) SetBaseStorage(area model.TechLevel, slot, newCount, freeCount int) {
	c := storedComponent(e.env.ShipList, e.planet, area, slot)
	if c == nil {
		return
	}
	if freeCount > 0 {
		e.Summary.add(c.Name+" (from storage)", freeCount, cost.Cost{})
	}
	have, _ := e.planet.BaseStorage(area, slot)
	if n := newCount - have; n != 0 {
		e.Summary.add(c.Name, n, c.Cost.Scale(int32(n)))
	}
}

func (e *BillingExecutor) AccountHull(hullID, count, freeCount int) {
	h := e.env.ShipList.Hull(hullID)
	if h == nil {
		return
	}
	if freeCount > 0 {
		e.Summary.add(h.Name+" (from storage)", freeCount, cost.Cost{})
	}
	if n := count - freeCount; n != 0 {
		e.Summary.add(h.Name, n, h.Cost.Scale(int32(n)))
	}
}

func (e *BillingExecutor) AccountFighterBay(count int) {
	if count > 0 {
		e.Summary.add("Fighter bays", count, cost.Cost{})
	}
}

func currentTech(p *model.Planet, area model.TechLevel) int {
	if n, ok := p.BaseTechLevel(area); ok && n > 0 {
		return n
	}
	return 1
}

// storedComponent resolves a storage slot to its component.
func storedComponent(list *catalogs.ShipList, p *model.Planet, area model.TechLevel, slot int) *catalogs.Component {
	if list == nil {
		return nil
	}
	id := slot
	if area == model.HullTech {
		id = list.Assignments.HullAt(p.Owner, slot)
	}
	return list.Component(area, id)
}

func techLabel(area model.TechLevel, from, to int) string {
	return area.String() + " tech " + strconv.Itoa(from) + " to " + strconv.Itoa(to)
}
