package model

// ShipBuildOrder describes a ship queued at a starbase.
//
// On a Planet, Hull is a truehull index of the owner. Inside a ship build
// transaction it is a hull id. Zero means "no order".
type ShipBuildOrder struct {
	Hull         int
	Engine       int
	Beam         int
	NumBeams     int
	Launcher     int
	NumLaunchers int
}

// Canonical drops the types of weapons that are not mounted.
func (o ShipBuildOrder) Canonical() ShipBuildOrder {
	if o.NumBeams == 0 {
		o.Beam = 0
	}
	if o.NumLaunchers == 0 {
		o.Launcher = 0
	}
	return o
}

func (o ShipBuildOrder) IsEmpty() bool { return o.Hull == 0 }
