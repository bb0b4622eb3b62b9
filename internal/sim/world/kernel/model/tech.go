package model

import "strings"

type TechLevel int

const (
	HullTech TechLevel = iota
	EngineTech
	BeamTech
	TorpedoTech
	NumTechAreas
)

var TechAreas = [NumTechAreas]TechLevel{HullTech, EngineTech, BeamTech, TorpedoTech}

const MaxTechLevel = 10

func (a TechLevel) String() string {
	switch a {
	case HullTech:
		return "Hull"
	case EngineTech:
		return "Engine"
	case BeamTech:
		return "Beam"
	case TorpedoTech:
		return "Torpedo"
	default:
		return "?"
	}
}

func (a TechLevel) Valid() bool { return a >= 0 && a < NumTechAreas }

// RegistrationKey is the licensing ceiling on base tech levels.
type RegistrationKey interface {
	MaxTechLevel(area TechLevel) int
}

type Key struct {
	Registered bool
	// Limits overrides the per-area ceiling when non-zero.
	Limits [NumTechAreas]int
}

func NewRegistrationKey(registered bool) *Key {
	return &Key{Registered: registered}
}

func (k *Key) MaxTechLevel(area TechLevel) int {
	if k == nil {
		return 6
	}
	if area.Valid() && k.Limits[area] > 0 {
		return k.Limits[area]
	}
	if k.Registered {
		return MaxTechLevel
	}
	return 6
}

func ParseTechLevel(s string) (TechLevel, bool) {
	switch strings.ToLower(s) {
	case "hull":
		return HullTech, true
	case "engine":
		return EngineTech, true
	case "beam":
		return BeamTech, true
	case "torpedo", "launcher":
		return TorpedoTech, true
	}
	return 0, false
}
