package model

import "github.com/stefanreuther/c2ng-sub002/internal/sim/signal"

// Ship holds the parts of a ship relevant to ammunition purchases.
type Ship struct {
	ID    int
	Name  string
	Owner int
	Hull  int

	Launcher     int
	NumLaunchers int
	NumBays      int

	cargo   map[Element]int32
	changed signal.Signal
}

func NewShip(id, owner, hull int) *Ship {
	return &Ship{ID: id, Owner: owner, Hull: hull, cargo: map[Element]int32{}}
}

func (s *Ship) OnChange() *signal.Signal { return &s.changed }

func (s *Ship) Cargo(el Element) int32 { return s.cargo[el] }

func (s *Ship) SetCargo(el Element, n int32) {
	if s.cargo == nil {
		s.cargo = map[Element]int32{}
	}
	if s.cargo[el] == n {
		return
	}
	s.cargo[el] = n
	s.changed.Emit()
}

// CargoUsed counts the cargo units occupied, including ammunition.
func (s *Ship) CargoUsed() int32 {
	var n int32
	for el, v := range s.cargo {
		if el == Money || v <= 0 {
			continue
		}
		n += v
	}
	return n
}
