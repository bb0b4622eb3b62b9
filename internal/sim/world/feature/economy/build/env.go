package build

import (
	"github.com/rs/zerolog"

	"github.com/stefanreuther/c2ng-sub002/internal/logging"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/tuning"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/undo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Env is the game context a build action works in. ShipList and Config
// are required. A nil Key imposes no ceiling, a nil Reverter allows no
// undo beyond the current state.
type Env struct {
	ShipList *catalogs.ShipList
	Config   *tuning.HostConfiguration
	Key      model.RegistrationKey
	Reverter undo.Reverter
	Log      *zerolog.Logger
}

func (e Env) validate() error {
	if e.ShipList == nil || e.Config == nil {
		return gameerr.New(gameerr.ErrBadRequest, "ship list and host configuration are required")
	}
	return nil
}

func (e Env) maxTech(area model.TechLevel) int {
	if e.Key == nil {
		return model.MaxTechLevel
	}
	return e.Key.MaxTechLevel(area)
}

func (e Env) logger() *zerolog.Logger { return logging.OrNop(e.Log) }

// undoInfo computes the undo bounds of p.
func (e Env) undoInfo(p *model.Planet) *undo.Information {
	var u undo.Information
	u.Set(p, e.ShipList, e.Reverter)
	return &u
}
