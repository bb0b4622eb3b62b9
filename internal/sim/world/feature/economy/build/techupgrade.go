package build

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// TechUpgrade raises or lowers starbase tech levels directly. Lowering
// refunds the difference, down to what undo information permits.
type TechUpgrade struct {
	Action
	targets [model.NumTechAreas]int
}

func NewTechUpgrade(p *model.Planet, container cargo.Container, env Env) (*TechUpgrade, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if !p.HasBase() {
		return nil, gameerr.NoPermission("planet has no starbase")
	}
	t := &TechUpgrade{}
	t.init(p, container, env)
	t.perform = t.performTech
	return t, nil
}

func (t *TechUpgrade) TechLevel(area model.TechLevel) int {
	if !area.Valid() {
		return 0
	}
	if n := t.targets[area]; n != 0 {
		return n
	}
	return currentTech(t.planet, area)
}

func (t *TechUpgrade) MinTechLevel(area model.TechLevel) int {
	return max(1, t.env.undoInfo(t.planet).MinTechLevel(area))
}

func (t *TechUpgrade) MaxTechLevel(area model.TechLevel) int {
	return max(t.env.maxTech(area), currentTech(t.planet, area))
}

// SetTechLevel sets the target level of an area, clamped to
// [MinTechLevel, MaxTechLevel]. It reports whether level was in range.
func (t *TechUpgrade) SetTechLevel(area model.TechLevel, level int) bool {
	if !area.Valid() {
		return false
	}
	n := clampInt(level, t.MinTechLevel(area), t.MaxTechLevel(area))
	if n != t.TechLevel(area) {
		t.targets[area] = n
		t.Update()
	}
	return n == level
}

func (t *TechUpgrade) Commit() error {
	if err := t.Action.Commit(); err != nil {
		return err
	}
	t.targets = [model.NumTechAreas]int{}
	t.Update()
	return nil
}

func (t *TechUpgrade) performTech(ex Executor) {
	for _, area := range model.TechAreas {
		if n := t.targets[area]; n != 0 && n != currentTech(t.planet, area) {
			ex.SetBaseTechLevel(area, n)
		}
	}
}
