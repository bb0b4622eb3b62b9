package model

import (
	"sort"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
)

// Planet is the colony state mutated by build transactions. Every setter
// emits OnChange synchronously.
type Planet struct {
	ID    int
	Name  string
	Owner int

	cargo map[Element]int32

	hasBase      bool
	buildingBase bool
	baseTech     [NumTechAreas]int
	storage      [NumTechAreas]map[int]int
	buildOrder   ShipBuildOrder

	buildings      [NumBuildingTypes]int
	autobuildGoal  [NumBuildingTypes]int
	autobuildSpeed [NumBuildingTypes]int

	changed signal.Signal
}

func NewPlanet(id, owner int) *Planet {
	return &Planet{
		ID:             id,
		Owner:          owner,
		cargo:          map[Element]int32{},
		autobuildGoal:  [NumBuildingTypes]int{1000, 1000, 20, 20},
		autobuildSpeed: [NumBuildingTypes]int{5, 10, 3, 2},
	}
}

func (p *Planet) OnChange() *signal.Signal { return &p.changed }

func (p *Planet) Cargo(el Element) (int32, bool) {
	if el < 0 {
		return 0, false
	}
	return p.cargo[el], true
}

func (p *Planet) SetCargo(el Element, n int32) {
	if el < 0 {
		return
	}
	if p.cargo == nil {
		p.cargo = map[Element]int32{}
	}
	if p.cargo[el] == n {
		return
	}
	p.cargo[el] = n
	p.changed.Emit()
}

func (p *Planet) HasBase() bool { return p.hasBase }

// SetHasBase installs or removes the starbase. A new base starts at tech 1
// with empty storage.
func (p *Planet) SetHasBase(v bool) {
	if p.hasBase == v {
		return
	}
	p.hasBase = v
	if v {
		for i := range p.baseTech {
			if p.baseTech[i] < 1 {
				p.baseTech[i] = 1
			}
		}
		p.buildingBase = false
	}
	p.changed.Emit()
}

func (p *Planet) IsBuildingBase() bool { return p.buildingBase }

func (p *Planet) SetBuildBaseFlag(v bool) {
	if p.buildingBase == v {
		return
	}
	p.buildingBase = v
	p.changed.Emit()
}

// BaseTechLevel is only known while the planet has a starbase.
func (p *Planet) BaseTechLevel(area TechLevel) (int, bool) {
	if !p.hasBase || !area.Valid() {
		return 0, false
	}
	return p.baseTech[area], true
}

func (p *Planet) SetBaseTechLevel(area TechLevel, level int) {
	if !area.Valid() || p.baseTech[area] == level {
		return
	}
	p.baseTech[area] = level
	p.changed.Emit()
}

func (p *Planet) BaseStorage(area TechLevel, slot int) (int, bool) {
	if !p.hasBase || !area.Valid() || slot <= 0 {
		return 0, false
	}
	return p.storage[area][slot], true
}

func (p *Planet) SetBaseStorage(area TechLevel, slot, n int) {
	if !area.Valid() || slot <= 0 {
		return
	}
	if p.storage[area] == nil {
		p.storage[area] = map[int]int{}
	}
	if p.storage[area][slot] == n {
		return
	}
	if n == 0 {
		delete(p.storage[area], slot)
	} else {
		p.storage[area][slot] = n
	}
	p.changed.Emit()
}

// StorageSlots returns the slots of an area holding at least one part.
func (p *Planet) StorageSlots(area TechLevel) []int {
	if !area.Valid() {
		return nil
	}
	out := make([]int, 0, len(p.storage[area]))
	for slot, n := range p.storage[area] {
		if n > 0 {
			out = append(out, slot)
		}
	}
	sort.Ints(out)
	return out
}

func (p *Planet) BaseBuildOrder() ShipBuildOrder { return p.buildOrder }

func (p *Planet) SetBaseBuildOrder(o ShipBuildOrder) {
	if p.buildOrder == o {
		return
	}
	p.buildOrder = o
	p.changed.Emit()
}

func (p *Planet) NumBuildings(b Building) int {
	if !b.Valid() {
		return 0
	}
	return p.buildings[b]
}

func (p *Planet) SetNumBuildings(b Building, n int) {
	if !b.Valid() || p.buildings[b] == n {
		return
	}
	p.buildings[b] = n
	p.changed.Emit()
}

func (p *Planet) AutobuildGoal(b Building) int {
	if !b.Valid() {
		return 0
	}
	return p.autobuildGoal[b]
}

func (p *Planet) SetAutobuildGoal(b Building, n int) {
	if !b.Valid() || p.autobuildGoal[b] == n {
		return
	}
	p.autobuildGoal[b] = n
	p.changed.Emit()
}

func (p *Planet) AutobuildSpeed(b Building) int {
	if !b.Valid() {
		return 0
	}
	return p.autobuildSpeed[b]
}

func (p *Planet) SetAutobuildSpeed(b Building, n int) {
	if !b.Valid() || p.autobuildSpeed[b] == n {
		return
	}
	p.autobuildSpeed[b] = n
	p.changed.Emit()
}

// Clone copies the planet state without its listeners.
func (p *Planet) Clone() *Planet {
	c := &Planet{
		ID:             p.ID,
		Name:           p.Name,
		Owner:          p.Owner,
		cargo:          make(map[Element]int32, len(p.cargo)),
		hasBase:        p.hasBase,
		buildingBase:   p.buildingBase,
		baseTech:       p.baseTech,
		buildOrder:     p.buildOrder,
		buildings:      p.buildings,
		autobuildGoal:  p.autobuildGoal,
		autobuildSpeed: p.autobuildSpeed,
	}
	for k, v := range p.cargo {
		c.cargo[k] = v
	}
	for i := range p.storage {
		if p.storage[i] == nil {
			continue
		}
		c.storage[i] = make(map[int]int, len(p.storage[i]))
		for k, v := range p.storage[i] {
			c.storage[i][k] = v
		}
	}
	return c
}
