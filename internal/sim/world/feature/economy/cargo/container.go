package cargo

import (
	"math"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Unlimited is the maximum amount of an element without a capacity limit.
const Unlimited = math.MaxInt32 / 2

// MaxStoredTorpedoes caps each torpedo type stored on a starbase.
const MaxStoredTorpedoes = 10000

// Container holds cargo and collects pending changes until Commit.
type Container interface {
	Name() string
	// Amount is the committed amount.
	Amount(el model.Element) int32
	// EffectiveAmount includes pending changes.
	EffectiveAmount(el model.Element) int32
	MinAmount(el model.Element) int32
	MaxAmount(el model.Element) int32
	Change(el model.Element, delta int32)
	Commit() error
	OnChange() *signal.Signal
}

// pending is the change bookkeeping shared by the containers.
type pending struct {
	delta   map[model.Element]int32
	changed signal.Signal
}

func (p *pending) get(el model.Element) int32 { return p.delta[el] }

func (p *pending) add(el model.Element, n int32) {
	if n == 0 {
		return
	}
	if p.delta == nil {
		p.delta = map[model.Element]int32{}
	}
	p.delta[el] += n
	if p.delta[el] == 0 {
		delete(p.delta, el)
	}
	p.changed.Emit()
}

// check verifies that every changed element stays inside its bounds.
func (p *pending) check(c Container) error {
	for el := range p.delta {
		n := c.EffectiveAmount(el)
		if n < c.MinAmount(el) {
			return gameerr.Newf(gameerr.ErrNoResource, "%s: not enough %s", c.Name(), el)
		}
		if n > c.MaxAmount(el) {
			return gameerr.Newf(gameerr.ErrNoResource, "%s: no room for %s", c.Name(), el)
		}
	}
	return nil
}

func (p *pending) take() map[model.Element]int32 {
	d := p.delta
	p.delta = nil
	return d
}
