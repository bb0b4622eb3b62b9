package cargo

import (
	"strconv"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

const maxShipMoney = 10000

// ShipStorage is a Container over a ship's hold. Ammunition shares the
// hull's cargo room and only fits a matching weapon.
type ShipStorage struct {
	pending
	ship     *model.Ship
	shipList *catalogs.ShipList
	conn     signal.Conn
}

func NewShipStorage(s *model.Ship, shipList *catalogs.ShipList) *ShipStorage {
	st := &ShipStorage{ship: s, shipList: shipList}
	st.conn = s.OnChange().Connect(st.changed.Emit)
	return st
}

func (s *ShipStorage) Name() string {
	if s.ship.Name != "" {
		return s.ship.Name
	}
	return "Ship #" + strconv.Itoa(s.ship.ID)
}

func (s *ShipStorage) Amount(el model.Element) int32 { return s.ship.Cargo(el) }

func (s *ShipStorage) EffectiveAmount(el model.Element) int32 {
	return s.Amount(el) + s.get(el)
}

func (s *ShipStorage) MinAmount(el model.Element) int32 {
	if _, ok := el.TorpedoType(); ok || el == model.Fighters {
		return s.Amount(el)
	}
	return 0
}

func (s *ShipStorage) MaxAmount(el model.Element) int32 {
	switch {
	case el == model.Money:
		return maxShipMoney
	case el == model.Fighters:
		if s.ship.NumBays == 0 {
			return s.Amount(el)
		}
	default:
		if t, ok := el.TorpedoType(); ok && (s.ship.NumLaunchers == 0 || t != s.ship.Launcher) {
			return s.Amount(el)
		}
	}
	room := s.capacity() - (s.effectiveUsed() - s.EffectiveAmount(el))
	if have := s.Amount(el); room < have {
		return have
	}
	return room
}

func (s *ShipStorage) capacity() int32 {
	if s.shipList == nil {
		return 0
	}
	if h := s.shipList.Hull(s.ship.Hull); h != nil {
		return int32(h.MaxCargo)
	}
	return 0
}

func (s *ShipStorage) effectiveUsed() int32 {
	used := s.ship.CargoUsed()
	for el, d := range s.delta {
		if el != model.Money {
			used += d
		}
	}
	return used
}

func (s *ShipStorage) Change(el model.Element, delta int32) { s.add(el, delta) }

func (s *ShipStorage) Commit() error {
	if err := s.check(s); err != nil {
		return err
	}
	for el, d := range s.take() {
		s.ship.SetCargo(el, s.Amount(el)+d)
	}
	return nil
}

func (s *ShipStorage) OnChange() *signal.Signal { return &s.changed }

func (s *ShipStorage) Close() { s.conn.Disconnect() }
