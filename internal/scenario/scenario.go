// Package scenario loads the game state a build transaction runs against
// from a JSON file: one planet, optional ships in orbit and, optionally,
// the planet as it was at turn start.
package scenario

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/undo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

//go:embed scenario.schema.json
var schemaSource string

type File struct {
	Registered bool           `json:"registered"`
	TechLimits map[string]int `json:"tech_limits,omitempty" validate:"omitempty,dive,gte=1,lte=10"`
	Planet     PlanetState    `json:"planet"`
	TurnStart  *PlanetState   `json:"turn_start,omitempty"`
	Ships      []ShipState    `json:"ships,omitempty" validate:"dive"`
}

type PlanetState struct {
	ID              int                    `json:"id" validate:"gte=1"`
	Name            string                 `json:"name,omitempty"`
	Owner           int                    `json:"owner" validate:"gte=1"`
	HasBase         bool                   `json:"has_base,omitempty"`
	BuildingBase    bool                   `json:"building_base,omitempty"`
	Tech            map[string]int         `json:"tech,omitempty" validate:"omitempty,dive,gte=1,lte=10"`
	Cargo           Cargo                  `json:"cargo"`
	Storage         map[string]map[int]int `json:"storage,omitempty" validate:"omitempty,dive,dive,gte=0"`
	Buildings       map[string]int         `json:"buildings,omitempty" validate:"omitempty,dive,gte=0"`
	AutobuildGoals  map[string]int         `json:"autobuild_goals,omitempty" validate:"omitempty,dive,gte=0"`
	AutobuildSpeeds map[string]int         `json:"autobuild_speeds,omitempty" validate:"omitempty,dive,gte=0"`
	BuildOrder      *BuildOrder            `json:"build_order,omitempty"`
}

type BuildOrder struct {
	Hull         int `json:"hull" validate:"gte=0"`
	Engine       int `json:"engine,omitempty" validate:"gte=0"`
	Beam         int `json:"beam,omitempty" validate:"gte=0"`
	NumBeams     int `json:"num_beams,omitempty" validate:"gte=0"`
	Launcher     int `json:"launcher,omitempty" validate:"gte=0"`
	NumLaunchers int `json:"num_launchers,omitempty" validate:"gte=0"`
}

type Cargo struct {
	Neutronium int32         `json:"neutronium,omitempty" validate:"gte=0"`
	Tritanium  int32         `json:"tritanium,omitempty" validate:"gte=0"`
	Duranium   int32         `json:"duranium,omitempty" validate:"gte=0"`
	Molybdenum int32         `json:"molybdenum,omitempty" validate:"gte=0"`
	Colonists  int32         `json:"colonists,omitempty" validate:"gte=0"`
	Supplies   int32         `json:"supplies,omitempty" validate:"gte=0"`
	Money      int32         `json:"money,omitempty" validate:"gte=0"`
	Fighters   int32         `json:"fighters,omitempty" validate:"gte=0"`
	Torpedoes  map[int]int32 `json:"torpedoes,omitempty" validate:"omitempty,dive,gte=0"`
}

type ShipState struct {
	ID           int    `json:"id" validate:"gte=1"`
	Name         string `json:"name,omitempty"`
	Owner        int    `json:"owner" validate:"gte=1"`
	Hull         int    `json:"hull" validate:"gte=1"`
	Launcher     int    `json:"launcher,omitempty" validate:"gte=0"`
	NumLaunchers int    `json:"num_launchers,omitempty" validate:"gte=0"`
	Bays         int    `json:"bays,omitempty" validate:"gte=0"`
	Cargo        Cargo  `json:"cargo"`
}

// Scenario is a loaded File turned into live game objects.
type Scenario struct {
	Planet *model.Planet
	Ships  map[int]*model.Ship
	Key    *model.Key
	// Reverter is set when the file has a turn_start section.
	Reverter *undo.TurnStartReverter
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	validatorOnce sync.Once
	validate      *validator.Validate
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("scenario.schema.json", schemaSource)
	})
	return schema, schemaErr
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Build()
}

// Parse decodes a scenario, checking it against the schema first.
func Parse(raw []byte) (*File, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if err := validatorInstance().Struct(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Build() (*Scenario, error) {
	p, err := f.Planet.build()
	if err != nil {
		return nil, fmt.Errorf("planet: %w", err)
	}
	sc := &Scenario{
		Planet: p,
		Ships:  map[int]*model.Ship{},
		Key:    model.NewRegistrationKey(f.Registered),
	}
	for name, n := range f.TechLimits {
		area, ok := model.ParseTechLevel(name)
		if !ok {
			return nil, fmt.Errorf("tech_limits: unknown area %q", name)
		}
		sc.Key.Limits[area] = n
	}
	if f.TurnStart != nil {
		old, err := f.TurnStart.build()
		if err != nil {
			return nil, fmt.Errorf("turn_start: %w", err)
		}
		if old.ID != p.ID {
			return nil, fmt.Errorf("turn_start: planet id %d does not match %d", old.ID, p.ID)
		}
		sc.Reverter = undo.NewTurnStartReverter(func(id int) *model.Planet {
			if id == p.ID {
				return p
			}
			return nil
		})
		sc.Reverter.Remember(old)
	}
	for _, st := range f.Ships {
		if _, dup := sc.Ships[st.ID]; dup {
			return nil, fmt.Errorf("ships: duplicate id %d", st.ID)
		}
		sh := model.NewShip(st.ID, st.Owner, st.Hull)
		sh.Name = st.Name
		sh.Launcher = st.Launcher
		sh.NumLaunchers = st.NumLaunchers
		sh.NumBays = st.Bays
		st.Cargo.apply(sh.SetCargo)
		sc.Ships[st.ID] = sh
	}
	return sc, nil
}

// ShipIDs lists the ship ids in ascending order.
func (s *Scenario) ShipIDs() []int {
	ids := make([]int, 0, len(s.Ships))
	for id := range s.Ships {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (ps PlanetState) build() (*model.Planet, error) {
	p := model.NewPlanet(ps.ID, ps.Owner)
	p.Name = ps.Name
	p.SetHasBase(ps.HasBase)
	p.SetBuildBaseFlag(ps.BuildingBase && !ps.HasBase)
	for name, n := range ps.Tech {
		area, ok := model.ParseTechLevel(name)
		if !ok {
			return nil, fmt.Errorf("tech: unknown area %q", name)
		}
		p.SetBaseTechLevel(area, n)
	}
	ps.Cargo.apply(p.SetCargo)
	for name, slots := range ps.Storage {
		area, ok := model.ParseTechLevel(name)
		if !ok {
			return nil, fmt.Errorf("storage: unknown area %q", name)
		}
		for slot, n := range slots {
			if slot <= 0 {
				return nil, fmt.Errorf("storage: %s slot %d", name, slot)
			}
			p.SetBaseStorage(area, slot, n)
		}
	}
	for field, m := range map[string]struct {
		values map[string]int
		set    func(model.Building, int)
	}{
		"buildings":        {ps.Buildings, p.SetNumBuildings},
		"autobuild_goals":  {ps.AutobuildGoals, p.SetAutobuildGoal},
		"autobuild_speeds": {ps.AutobuildSpeeds, p.SetAutobuildSpeed},
	} {
		for name, n := range m.values {
			b, ok := model.ParseBuilding(name)
			if !ok {
				return nil, fmt.Errorf("%s: unknown building %q", field, name)
			}
			m.set(b, n)
		}
	}
	if o := ps.BuildOrder; o != nil {
		p.SetBaseBuildOrder(model.ShipBuildOrder{
			Hull:         o.Hull,
			Engine:       o.Engine,
			Beam:         o.Beam,
			NumBeams:     o.NumBeams,
			Launcher:     o.Launcher,
			NumLaunchers: o.NumLaunchers,
		})
	}
	return p, nil
}

func (c Cargo) apply(set func(model.Element, int32)) {
	set(model.Neutronium, c.Neutronium)
	set(model.Tritanium, c.Tritanium)
	set(model.Duranium, c.Duranium)
	set(model.Molybdenum, c.Molybdenum)
	set(model.Colonists, c.Colonists)
	set(model.Supplies, c.Supplies)
	set(model.Money, c.Money)
	set(model.Fighters, c.Fighters)
	for id, n := range c.Torpedoes {
		if id > 0 {
			set(model.Torpedo(id), n)
		}
	}
}

// StateOf captures a planet in the scenario file format.
func StateOf(p *model.Planet, launchers []int) PlanetState {
	ps := PlanetState{
		ID:           p.ID,
		Name:         p.Name,
		Owner:        p.Owner,
		HasBase:      p.HasBase(),
		BuildingBase: p.IsBuildingBase(),
		Tech:         map[string]int{},
		Storage:      map[string]map[int]int{},
		Buildings:    map[string]int{},
	}
	for _, area := range model.TechAreas {
		key := techKey(area)
		if n, ok := p.BaseTechLevel(area); ok {
			ps.Tech[key] = n
		}
		for _, slot := range p.StorageSlots(area) {
			if ps.Storage[key] == nil {
				ps.Storage[key] = map[int]int{}
			}
			ps.Storage[key][slot], _ = p.BaseStorage(area, slot)
		}
	}
	for _, b := range model.Buildings {
		if n := p.NumBuildings(b); n != 0 {
			ps.Buildings[buildingKey(b)] = n
		}
	}
	get := func(el model.Element) int32 {
		n, _ := p.Cargo(el)
		return n
	}
	ps.Cargo = Cargo{
		Neutronium: get(model.Neutronium),
		Tritanium:  get(model.Tritanium),
		Duranium:   get(model.Duranium),
		Molybdenum: get(model.Molybdenum),
		Colonists:  get(model.Colonists),
		Supplies:   get(model.Supplies),
		Money:      get(model.Money),
		Fighters:   get(model.Fighters),
	}
	for _, id := range launchers {
		if n := get(model.Torpedo(id)); n != 0 {
			if ps.Cargo.Torpedoes == nil {
				ps.Cargo.Torpedoes = map[int]int32{}
			}
			ps.Cargo.Torpedoes[id] = n
		}
	}
	if o := p.BaseBuildOrder(); !o.IsEmpty() {
		ps.BuildOrder = &BuildOrder{
			Hull:         o.Hull,
			Engine:       o.Engine,
			Beam:         o.Beam,
			NumBeams:     o.NumBeams,
			Launcher:     o.Launcher,
			NumLaunchers: o.NumLaunchers,
		}
	}
	return ps
}

func techKey(a model.TechLevel) string {
	switch a {
	case model.HullTech:
		return "hull"
	case model.EngineTech:
		return "engine"
	case model.BeamTech:
		return "beam"
	case model.TorpedoTech:
		return "torpedo"
	}
	return strconv.Itoa(int(a))
}

func buildingKey(b model.Building) string {
	switch b {
	case model.Mines:
		return "mines"
	case model.Factories:
		return "factories"
	case model.Defense:
		return "defense"
	case model.BaseDefense:
		return "base_defense"
	}
	return strconv.Itoa(int(b))
}
