package undo

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Information bounds sell and downgrade operations on one planet. It
// combines Reverter answers with what the planet currently holds: a tech
// level cannot drop below what an unsellable stored part or torpedo needs.
type Information struct {
	planetID               int
	minTechLevel           [model.NumTechAreas]int
	suppliesAllowedToBuy   int32
	fightersAllowedToSell  int
	torpedoesAllowedToSell map[int]int
}

// Set computes the bounds for p. rev may be nil.
func (u *Information) Set(p *model.Planet, shipList *catalogs.ShipList, rev Reverter) {
	u.Clear()
	if p == nil {
		return
	}
	u.planetID = p.ID

	var current [model.NumTechAreas]int
	for _, area := range model.TechAreas {
		cur, _ := p.BaseTechLevel(area)
		current[area] = cur
		lowest := cur
		if rev != nil {
			if v, ok := rev.MinTechLevel(p.ID, area); ok && v < lowest {
				lowest = v
			}
		}
		u.minTechLevel[area] = lowest
	}

	if shipList != nil {
		for _, area := range model.TechAreas {
			for _, slot := range p.StorageSlots(area) {
				have, _ := p.BaseStorage(area, slot)
				keep := have
				if rev != nil {
					if v, ok := rev.MinBaseStorage(p.ID, area, slot); ok && v < keep {
						keep = v
					}
				}
				if keep <= 0 {
					continue
				}
				id := slot
				if area == model.HullTech {
					id = shipList.Assignments.HullAt(p.Owner, slot)
				}
				if c := shipList.Component(area, id); c != nil {
					u.raiseTech(area, c.Tech, current[area])
				}
			}
		}
	}

	if rev != nil {
		if v, ok := rev.NumFightersAllowedToSell(p.ID); ok {
			have, _ := p.Cargo(model.Fighters)
			u.fightersAllowedToSell = clamp(v, 0, int(have))
		}
		if v, ok := rev.SuppliesAllowedToBuy(p.ID); ok && v > 0 {
			u.suppliesAllowedToBuy = v
		}
	}

	if shipList != nil {
		for _, id := range shipList.ComponentIDs(model.TorpedoTech) {
			have, _ := p.Cargo(model.Torpedo(id))
			allowed := 0
			if rev != nil {
				if v, ok := rev.NumTorpedoesAllowedToSell(p.ID, id); ok {
					allowed = clamp(v, 0, int(have))
				}
			}
			if allowed > 0 {
				u.torpedoesAllowedToSell[id] = allowed
			}
			if int(have) > allowed {
				u.raiseTech(model.TorpedoTech, shipList.Launcher(id).Tech, current[model.TorpedoTech])
			}
		}
	}
}

func (u *Information) Clear() {
	*u = Information{torpedoesAllowedToSell: map[int]int{}}
}

func (u *Information) PlanetID() int { return u.planetID }

func (u *Information) MinTechLevel(area model.TechLevel) int {
	if !area.Valid() {
		return 0
	}
	return u.minTechLevel[area]
}

func (u *Information) SuppliesAllowedToBuy() int32 { return u.suppliesAllowedToBuy }

func (u *Information) FightersAllowedToSell() int { return u.fightersAllowedToSell }

func (u *Information) TorpedoesAllowedToSell(launcher int) int {
	return u.torpedoesAllowedToSell[launcher]
}

func (u *Information) raiseTech(area model.TechLevel, tech, current int) {
	if tech > current {
		tech = current
	}
	if tech > u.minTechLevel[area] {
		u.minTechLevel[area] = tech
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
