package model

import (
	"strconv"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
)

// Element is a cargo type held by a planet or ship.
type Element int

const (
	Neutronium Element = iota
	Tritanium
	Duranium
	Molybdenum
	Fighters
	Colonists
	Supplies
	Money
	firstTorpedo
)

// Torpedo returns the element of torpedoes fired by launcher type id (1-based).
func Torpedo(launcherID int) Element {
	return firstTorpedo + Element(launcherID-1)
}

// TorpedoType returns the launcher id of a torpedo element.
func (e Element) TorpedoType() (int, bool) {
	if e < firstTorpedo {
		return 0, false
	}
	return int(e-firstTorpedo) + 1, true
}

func (e Element) String() string {
	switch e {
	case Neutronium:
		return "Neutronium"
	case Tritanium:
		return "Tritanium"
	case Duranium:
		return "Duranium"
	case Molybdenum:
		return "Molybdenum"
	case Fighters:
		return "Fighters"
	case Colonists:
		return "Colonists"
	case Supplies:
		return "Supplies"
	case Money:
		return "Money"
	}
	if t, ok := e.TorpedoType(); ok {
		return "Torpedo" + strconv.Itoa(t)
	}
	return "?"
}

// FromCostKind maps a cost kind to the cargo element paying for it.
func FromCostKind(k cost.Kind) Element {
	switch k {
	case cost.Tritanium:
		return Tritanium
	case cost.Duranium:
		return Duranium
	case cost.Molybdenum:
		return Molybdenum
	case cost.Supplies:
		return Supplies
	default:
		return Money
	}
}
