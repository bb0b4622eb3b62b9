package model

type Building int

const (
	Mines Building = iota
	Factories
	Defense
	BaseDefense
	NumBuildingTypes
)

var Buildings = [NumBuildingTypes]Building{Mines, Factories, Defense, BaseDefense}

func (b Building) String() string {
	switch b {
	case Mines:
		return "Mines"
	case Factories:
		return "Factories"
	case Defense:
		return "Defense"
	case BaseDefense:
		return "BaseDefense"
	default:
		return "?"
	}
}

func (b Building) Valid() bool { return b >= 0 && b < NumBuildingTypes }

func ParseBuilding(s string) (Building, bool) {
	switch s {
	case "mines", "Mines", "MINES":
		return Mines, true
	case "factories", "Factories", "FACTORIES":
		return Factories, true
	case "defense", "Defense", "DEFENSE":
		return Defense, true
	case "basedefense", "base_defense", "BaseDefense", "BASE_DEFENSE":
		return BaseDefense, true
	}
	return 0, false
}
