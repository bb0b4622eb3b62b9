package undo

import "github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"

// Reverter answers how far this turn's changes to a planet may be undone.
// A false second result means "unknown", which callers treat as no room
// beyond the current state.
type Reverter interface {
	MinBaseStorage(planetID int, area model.TechLevel, slot int) (int, bool)
	MinTechLevel(planetID int, area model.TechLevel) (int, bool)
	NumTorpedoesAllowedToSell(planetID, launcher int) (int, bool)
	NumFightersAllowedToSell(planetID int) (int, bool)
	SuppliesAllowedToBuy(planetID int) (int32, bool)
	MinBuildings(planetID int, b model.Building) (int, bool)
}

// TurnStartReverter compares live planets with copies taken when the turn
// was loaded.
type TurnStartReverter struct {
	old  map[int]*model.Planet
	live func(id int) *model.Planet
}

func NewTurnStartReverter(live func(id int) *model.Planet) *TurnStartReverter {
	return &TurnStartReverter{old: map[int]*model.Planet{}, live: live}
}

// Remember records p's current state as its turn-start state.
func (r *TurnStartReverter) Remember(p *model.Planet) {
	r.old[p.ID] = p.Clone()
}

func (r *TurnStartReverter) pair(id int) (old, cur *model.Planet) {
	old = r.old[id]
	if old == nil || r.live == nil {
		return nil, nil
	}
	cur = r.live(id)
	if cur == nil {
		return nil, nil
	}
	return old, cur
}

func (r *TurnStartReverter) MinBaseStorage(planetID int, area model.TechLevel, slot int) (int, bool) {
	old, _ := r.pair(planetID)
	if old == nil {
		return 0, false
	}
	n, _ := old.BaseStorage(area, slot)
	return n, true
}

func (r *TurnStartReverter) MinTechLevel(planetID int, area model.TechLevel) (int, bool) {
	old, _ := r.pair(planetID)
	if old == nil || !area.Valid() {
		return 0, false
	}
	if n, ok := old.BaseTechLevel(area); ok {
		return n, true
	}
	// Base built this turn.
	return 1, true
}

func (r *TurnStartReverter) NumTorpedoesAllowedToSell(planetID, launcher int) (int, bool) {
	return r.bought(planetID, model.Torpedo(launcher))
}

func (r *TurnStartReverter) NumFightersAllowedToSell(planetID int) (int, bool) {
	return r.bought(planetID, model.Fighters)
}

func (r *TurnStartReverter) SuppliesAllowedToBuy(planetID int) (int32, bool) {
	old, cur := r.pair(planetID)
	if old == nil {
		return 0, false
	}
	was, _ := old.Cargo(model.Supplies)
	now, _ := cur.Cargo(model.Supplies)
	if was > now {
		return was - now, true
	}
	return 0, true
}

func (r *TurnStartReverter) MinBuildings(planetID int, b model.Building) (int, bool) {
	old, _ := r.pair(planetID)
	if old == nil || !b.Valid() {
		return 0, false
	}
	return old.NumBuildings(b), true
}

func (r *TurnStartReverter) bought(planetID int, el model.Element) (int, bool) {
	old, cur := r.pair(planetID)
	if old == nil {
		return 0, false
	}
	was, _ := old.Cargo(el)
	now, _ := cur.Cargo(el)
	if now > was {
		return int(now - was), true
	}
	return 0, true
}
