package cargo

import (
	"strconv"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/tuning"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/undo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// PlanetStorage is a Container over a planet's surface and starbase cargo.
// Ammunition can only drop below its current amount by what undo allows.
type PlanetStorage struct {
	pending
	planet *model.Planet
	config *tuning.HostConfiguration
	undo   *undo.Information
	conn   signal.Conn
}

// NewPlanetStorage creates a container; info may be nil.
func NewPlanetStorage(p *model.Planet, config *tuning.HostConfiguration, info *undo.Information) *PlanetStorage {
	s := &PlanetStorage{planet: p, config: config, undo: info}
	s.conn = p.OnChange().Connect(s.changed.Emit)
	return s
}

func (s *PlanetStorage) Name() string {
	if s.planet.Name != "" {
		return s.planet.Name
	}
	return "Planet #" + strconv.Itoa(s.planet.ID)
}

func (s *PlanetStorage) Planet() *model.Planet { return s.planet }

func (s *PlanetStorage) Amount(el model.Element) int32 {
	n, _ := s.planet.Cargo(el)
	return n
}

func (s *PlanetStorage) EffectiveAmount(el model.Element) int32 {
	return s.Amount(el) + s.get(el)
}

func (s *PlanetStorage) MinAmount(el model.Element) int32 {
	have := s.Amount(el)
	if el == model.Fighters {
		if s.undo == nil {
			return have
		}
		return have - int32(s.undo.FightersAllowedToSell())
	}
	if t, ok := el.TorpedoType(); ok {
		if s.undo == nil {
			return have
		}
		return have - int32(s.undo.TorpedoesAllowedToSell(t))
	}
	return 0
}

func (s *PlanetStorage) MaxAmount(el model.Element) int32 {
	if el == model.Fighters {
		if !s.planet.HasBase() || s.config == nil {
			return s.Amount(el)
		}
		limit := int32(s.config.MaximumFightersOnBase)
		if have := s.Amount(el); have > limit {
			return have
		}
		return limit
	}
	if _, ok := el.TorpedoType(); ok {
		if !s.planet.HasBase() {
			return s.Amount(el)
		}
		return max(MaxStoredTorpedoes, s.Amount(el))
	}
	return Unlimited
}

func (s *PlanetStorage) Change(el model.Element, delta int32) { s.add(el, delta) }

func (s *PlanetStorage) Commit() error {
	if err := s.check(s); err != nil {
		return err
	}
	for el, d := range s.take() {
		s.planet.SetCargo(el, s.Amount(el)+d)
	}
	return nil
}

func (s *PlanetStorage) OnChange() *signal.Signal { return &s.changed }

func (s *PlanetStorage) Close() { s.conn.Disconnect() }
