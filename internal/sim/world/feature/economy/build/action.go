package build

import (
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Status classifies whether an action can be committed.
type Status int

const (
	Success Status = iota
	MissingResources
	DisallowedTech
	ForeignHull
	DisabledTech
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case MissingResources:
		return "missing resources"
	case DisallowedTech:
		return "tech level not allowed"
	case ForeignHull:
		return "foreign hull"
	case DisabledTech:
		return "tech upgrade disabled"
	}
	return "unknown"
}

// Action is the driver shared by all build transactions. It keeps the cost
// of the proposed change in a cargo.CostAction, recomputes it whenever the
// planet, ship list, configuration or container changes, and commits it.
//
// Subscriptions are made on the first Update and dropped by Close.
type Action struct {
	planet     *model.Planet
	env        Env
	costAction *cargo.CostAction

	// perform describes the change in executor calls. Actions priced
	// outside the executor set price instead.
	perform func(Executor)
	price   func() (cost.Cost, Impediments)
	watch   []*signal.Signal

	useTechUpgrade bool
	impediments    Impediments

	subs      signal.Group
	notifying bool
	changed   signal.Signal
}

func (a *Action) init(p *model.Planet, container cargo.Container, env Env, watch ...*signal.Signal) {
	a.planet = p
	a.env = env
	a.costAction = cargo.NewCostAction(container)
	a.useTechUpgrade = true
	a.watch = watch
}

func (a *Action) Planet() *model.Planet { return a.planet }

// CostAction returns the pending cost, refreshed against the current state.
func (a *Action) CostAction() *cargo.CostAction {
	a.Update()
	return a.costAction
}

func (a *Action) OnChange() *signal.Signal { return &a.changed }

// Update recomputes cost and impediments and notifies listeners. Listeners
// calling back into the action do not cause nested notifications.
func (a *Action) Update() {
	a.subscribe()
	c, imp := a.compute()
	a.impediments = imp
	if a.notifying {
		a.costAction.SetCost(c)
		return
	}
	a.notifying = true
	defer func() { a.notifying = false }()
	a.costAction.SetCost(c)
	a.changed.Emit()
}

func (a *Action) compute() (cost.Cost, Impediments) {
	if a.perform != nil {
		ex := NewCountingExecutor(a.planet, a.env, a.useTechUpgrade)
		a.perform(ex)
		return ex.Cost, ex.Impediments
	}
	if a.price != nil {
		return a.price()
	}
	return cost.Cost{}, 0
}

func (a *Action) forward() {
	if a.notifying {
		return
	}
	a.notifying = true
	defer func() { a.notifying = false }()
	a.changed.Emit()
}

func (a *Action) subscribe() {
	if !a.subs.Empty() {
		return
	}
	a.subs.Add(a.planet.OnChange().Connect(a.Update))
	a.subs.Add(a.env.ShipList.OnChange().Connect(a.Update))
	a.subs.Add(a.env.Config.OnChange().Connect(a.Update))
	for _, s := range a.watch {
		a.subs.Add(s.Connect(a.Update))
	}
	a.subs.Add(a.costAction.OnChange().Connect(a.forward))
}

func (a *Action) Status() Status {
	a.Update()
	switch {
	case a.impediments.Has(NeedForeignHull):
		return ForeignHull
	case a.impediments.Has(NeedDisabledTech):
		return DisabledTech
	case a.impediments.Has(NeedInaccessibleTech):
		return DisallowedTech
	case !a.costAction.IsValid():
		return MissingResources
	}
	return Success
}

func (a *Action) IsValid() bool { return a.Status() == Success }

// SetUseTechUpgrade selects whether tech level increases are bought as
// part of the action or rejected.
func (a *Action) SetUseTechUpgrade(v bool) {
	if a.useTechUpgrade == v {
		return
	}
	a.useTechUpgrade = v
	a.Update()
}

func (a *Action) IsUseTechUpgrade() bool { return a.useTechUpgrade }

// CostSummary itemizes the cost of executor-based actions.
func (a *Action) CostSummary() Summary {
	if a.perform == nil {
		return Summary{}
	}
	ex := NewBillingExecutor(a.planet, a.env)
	a.perform(ex)
	return ex.Summary
}

func (a *Action) Commit() error {
	return a.commit(func() error {
		a.perform(NewExecutingExecutor(a.planet))
		return nil
	})
}

// commit validates, runs apply and pays. Subscriptions are suspended
// meanwhile and restored by the final Update.
func (a *Action) commit(apply func() error) error {
	if st := a.Status(); st != Success {
		return statusError(st)
	}
	a.subs.DisconnectAll()
	defer a.Update()

	c := a.costAction.Cost()
	if err := apply(); err != nil {
		return err
	}
	if err := a.costAction.Commit(); err != nil {
		return err
	}
	a.env.logger().Debug().
		Int("planet", a.planet.ID).
		Str("cost", c.String()).
		Msg("build action committed")
	return nil
}

// Close releases all subscriptions.
func (a *Action) Close() {
	a.subs.DisconnectAll()
	a.costAction.Close()
}

func statusError(st Status) error {
	switch st {
	case MissingResources:
		return gameerr.NoResource("not enough resources")
	case ForeignHull:
		return gameerr.NoPermission("hull cannot be built by this player")
	case DisabledTech:
		return gameerr.NoPermission("tech upgrade required but not enabled")
	case DisallowedTech:
		return gameerr.NoPermission("tech level exceeds registration limit")
	}
	return gameerr.New(gameerr.ErrInternal, "unexpected status "+st.String())
}

// affordable reports whether ca's container could pay c on top of the
// reserved amount.
func affordable(ca *cargo.CostAction, c cost.Cost) bool {
	for _, k := range cost.Kinds {
		if c.Get(k)+ca.ReservedAmount().Get(k) > ca.AvailableAmount(k) {
			return false
		}
	}
	return true
}
