package cargo

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// CostAction tracks a cost to be paid from a container. Reserved amounts
// are held back for other pending actions on the same container.
type CostAction struct {
	container Container
	cost      cost.Cost
	reserved  cost.Cost

	conn    signal.Conn
	changed signal.Signal
}

func NewCostAction(c Container) *CostAction {
	a := &CostAction{container: c}
	a.conn = c.OnChange().Connect(a.changed.Emit)
	return a
}

func (a *CostAction) Container() Container { return a.container }

func (a *CostAction) SetCost(c cost.Cost) {
	if a.cost == c {
		return
	}
	a.cost = c
	a.changed.Emit()
}

func (a *CostAction) Cost() cost.Cost { return a.cost }

func (a *CostAction) SetReservedAmount(c cost.Cost) {
	if a.reserved == c {
		return
	}
	a.reserved = c
	a.changed.Emit()
}

func (a *CostAction) ReservedAmount() cost.Cost { return a.reserved }

// AvailableAmount is what the container can give without dropping below
// its minimum.
func (a *CostAction) AvailableAmount(k cost.Kind) int32 {
	el := model.FromCostKind(k)
	return a.container.EffectiveAmount(el) - a.container.MinAmount(el)
}

func (a *CostAction) MissingAmount(k cost.Kind) int32 {
	need := a.cost.Get(k) + a.reserved.Get(k) - a.AvailableAmount(k)
	if need < 0 {
		return 0
	}
	return need
}

// RemainingAmount is what stays available after paying; negative when short.
func (a *CostAction) RemainingAmount(k cost.Kind) int32 {
	return a.AvailableAmount(k) - a.cost.Get(k) - a.reserved.Get(k)
}

func (a *CostAction) MissingAmountAsCost() cost.Cost {
	var c cost.Cost
	for _, k := range cost.Kinds {
		c.Set(k, a.MissingAmount(k))
	}
	return c
}

func (a *CostAction) IsValid() bool {
	for _, k := range cost.Kinds {
		if a.MissingAmount(k) > 0 {
			return false
		}
	}
	return true
}

// Commit pays the cost from the container. The container is committed too.
func (a *CostAction) Commit() error {
	if !a.IsValid() {
		return gameerr.NoResource("not enough resources: missing " + a.MissingAmountAsCost().String())
	}
	for _, k := range cost.Kinds {
		if n := a.cost.Get(k); n != 0 {
			a.container.Change(model.FromCostKind(k), -n)
		}
	}
	return a.container.Commit()
}

func (a *CostAction) OnChange() *signal.Signal { return &a.changed }

func (a *CostAction) Close() { a.conn.Disconnect() }
