package build

import (
	"sort"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

const noElement model.Element = -1

// BuildAmmo buys torpedoes and fighters at a starbase. The financier pays;
// the receiver (the planet itself or a ship in orbit) stores the result.
// Pending purchases live as uncommitted changes of the receiver.
type BuildAmmo struct {
	Action
	receiver cargo.Container
}

func NewBuildAmmo(p *model.Planet, financier, receiver cargo.Container, env Env) (*BuildAmmo, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if !p.HasBase() {
		return nil, gameerr.NoPermission("planet has no starbase")
	}
	if receiver == nil {
		receiver = financier
	}
	b := &BuildAmmo{receiver: receiver}
	b.init(p, financier, env, receiver.OnChange())
	b.price = func() (cost.Cost, Impediments) {
		c, imp, _ := b.costFor(noElement, 0)
		return c, imp
	}
	return b, nil
}

func (b *BuildAmmo) Receiver() cargo.Container { return b.receiver }

// Types lists the ammunition this base can produce: fighters, then
// torpedoes by launcher id.
func (b *BuildAmmo) Types() []model.Element {
	out := []model.Element{model.Fighters}
	for _, id := range b.env.ShipList.ComponentIDs(model.TorpedoTech) {
		out = append(out, model.Torpedo(id))
	}
	return out
}

func (b *BuildAmmo) isAmmo(el model.Element) bool {
	if el == model.Fighters {
		return true
	}
	t, ok := el.TorpedoType()
	return ok && b.env.ShipList.Launcher(t) != nil
}

func (b *BuildAmmo) Amount(el model.Element) int { return int(b.receiver.EffectiveAmount(el)) }

func (b *BuildAmmo) MinAmount(el model.Element) int {
	return min(int(b.receiver.MinAmount(el)), b.Amount(el))
}

// MaxAmount is the receiver's limit, or the current amount for torpedoes
// whose tech cannot be reached.
func (b *BuildAmmo) MaxAmount(el model.Element) int {
	if !b.isAmmo(el) {
		return int(b.receiver.Amount(el))
	}
	if t, ok := el.TorpedoType(); ok {
		tech := b.env.ShipList.Launcher(t).Tech
		if tech > b.env.maxTech(model.TorpedoTech) ||
			(!b.useTechUpgrade && tech > currentTech(b.planet, model.TorpedoTech)) {
			return int(b.receiver.Amount(el))
		}
	}
	return int(b.receiver.MaxAmount(el))
}

// Add changes the amount of one ammunition type, clamped to
// [MinAmount, MaxAmount]. Without partial, a clamped request is dropped.
// Returns the change applied.
func (b *BuildAmmo) Add(el model.Element, count int, partial bool) int {
	if !b.isAmmo(el) || count == 0 {
		return 0
	}
	cur := b.Amount(el)
	delta := clampInt(count, min(b.MinAmount(el), cur)-cur, max(b.MaxAmount(el), cur)-cur)
	if delta != count && !partial {
		return 0
	}
	if delta == 0 {
		return 0
	}
	b.receiver.Change(el, int32(delta))
	b.Update()
	return delta
}

// AddLimitCash adds up to count units, as many as the financier can pay
// for. A tech upgrade needed for the type is paid by the first unit.
func (b *BuildAmmo) AddLimitCash(el model.Element, count int) int {
	if !b.isAmmo(el) || count <= 0 {
		return b.Add(el, count, true)
	}
	limit := min(count, max(b.MaxAmount(el)-b.Amount(el), 0))
	n := sort.Search(limit+1, func(i int) bool {
		c, _, _ := b.costFor(el, i)
		return !affordable(b.costAction, c)
	}) - 1
	if n <= 0 {
		return 0
	}
	return b.Add(el, n, false)
}

func (b *BuildAmmo) unitCost(el model.Element) cost.Cost {
	if el == model.Fighters {
		return b.env.Config.BaseFighterCost
	}
	if t, ok := el.TorpedoType(); ok {
		if l := b.env.ShipList.Launcher(t); l != nil {
			return l.TorpedoCost
		}
	}
	return cost.Cost{}
}

// costFor prices the pending changes plus extra units of el. It also
// returns the torpedo tech level the purchase needs.
func (b *BuildAmmo) costFor(el model.Element, extra int) (cost.Cost, Impediments, int) {
	var c cost.Cost
	need := 0
	for _, t := range b.Types() {
		d := b.receiver.EffectiveAmount(t) - b.receiver.Amount(t)
		if t == el {
			d += int32(extra)
		}
		if d == 0 {
			continue
		}
		c = c.Add(b.unitCost(t).Scale(d))
		if id, ok := t.TorpedoType(); ok && d > 0 {
			need = max(need, b.env.ShipList.Launcher(id).Tech)
		}
	}

	var imp Impediments
	if cur := currentTech(b.planet, model.TorpedoTech); need > cur {
		c = c.Add(b.env.Config.TechCost(model.TorpedoTech, cur, need))
		if !b.useTechUpgrade {
			imp |= NeedDisabledTech
		} else if need > b.env.maxTech(model.TorpedoTech) {
			imp |= NeedInaccessibleTech
		}
	}
	return c, imp, need
}

func (b *BuildAmmo) CostSummary() Summary {
	var s Summary
	_, _, need := b.costFor(noElement, 0)
	if cur := currentTech(b.planet, model.TorpedoTech); need > cur {
		s.add(techLabel(model.TorpedoTech, cur, need), 1, b.env.Config.TechCost(model.TorpedoTech, cur, need))
	}
	for _, t := range b.Types() {
		d := b.receiver.EffectiveAmount(t) - b.receiver.Amount(t)
		if d == 0 {
			continue
		}
		label := "Fighters"
		if id, ok := t.TorpedoType(); ok {
			label = b.env.ShipList.Launcher(id).Name + " torpedoes"
		}
		s.add(label, int(d), b.unitCost(t).Scale(d))
	}
	return s
}

// Commit stores the ammunition, raises torpedo tech and pays.
func (b *BuildAmmo) Commit() error {
	return b.commit(func() error {
		_, _, need := b.costFor(noElement, 0)
		if err := b.receiver.Commit(); err != nil {
			return err
		}
		if need > currentTech(b.planet, model.TorpedoTech) {
			b.planet.SetBaseTechLevel(model.TorpedoTech, need)
		}
		return nil
	})
}
