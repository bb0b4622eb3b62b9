package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

type Component struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Tech int       `json:"tech"`
	Cost cost.Cost `json:"cost"`
	Mass int       `json:"mass,omitempty"`
}

type Hull struct {
	Component
	NumEngines   int `json:"engines"`
	MaxBeams     int `json:"max_beams"`
	MaxLaunchers int `json:"max_launchers"`
	NumBays      int `json:"bays"`
	MaxCargo     int `json:"max_cargo"`
}

type Launcher struct {
	Component
	TorpedoCost cost.Cost `json:"torpedo_cost"`
}

// ShipList is the component catalog. Mutations through its setters emit
// OnChange; direct edits to the maps should be followed by NotifyListeners.
type ShipList struct {
	Hulls       map[int]*Hull
	Engines     map[int]*Component
	Beams       map[int]*Component
	Launchers   map[int]*Launcher
	Assignments HullAssignments

	// Digests maps each loaded file name to its sha256.
	Digests map[string]string

	changed signal.Signal
}

func New() *ShipList {
	return &ShipList{
		Hulls:     map[int]*Hull{},
		Engines:   map[int]*Component{},
		Beams:     map[int]*Component{},
		Launchers: map[int]*Launcher{},
		Digests:   map[string]string{},
	}
}

func (l *ShipList) OnChange() *signal.Signal { return &l.changed }

func (l *ShipList) NotifyListeners() { l.changed.Emit() }

func (l *ShipList) Hull(id int) *Hull { return l.Hulls[id] }

func (l *ShipList) Engine(id int) *Component { return l.Engines[id] }

func (l *ShipList) Beam(id int) *Component { return l.Beams[id] }

func (l *ShipList) Launcher(id int) *Launcher { return l.Launchers[id] }

// Component returns the part with the given id in a tech area. For the
// hull area, id is a hull id.
func (l *ShipList) Component(area model.TechLevel, id int) *Component {
	switch area {
	case model.HullTech:
		if h := l.Hulls[id]; h != nil {
			return &h.Component
		}
	case model.EngineTech:
		return l.Engines[id]
	case model.BeamTech:
		return l.Beams[id]
	case model.TorpedoTech:
		if t := l.Launchers[id]; t != nil {
			return &t.Component
		}
	}
	return nil
}

// ComponentIDs lists the ids of an area in ascending order.
func (l *ShipList) ComponentIDs(area model.TechLevel) []int {
	var ids []int
	switch area {
	case model.HullTech:
		ids = keys(l.Hulls)
	case model.EngineTech:
		ids = keys(l.Engines)
	case model.BeamTech:
		ids = keys(l.Beams)
	case model.TorpedoTech:
		ids = keys(l.Launchers)
	}
	sort.Ints(ids)
	return ids
}

// BestComponent returns the id of the highest-tech part of an area whose
// tech does not exceed maxTech; ties go to the higher id. Zero if none.
func (l *ShipList) BestComponent(area model.TechLevel, maxTech int) int {
	best, bestTech := 0, 0
	for _, id := range l.ComponentIDs(area) {
		c := l.Component(area, id)
		if c.Tech <= maxTech && c.Tech >= bestTech {
			best, bestTech = id, c.Tech
		}
	}
	return best
}

func (l *ShipList) AddHull(h Hull) {
	l.Hulls[h.ID] = &h
	l.changed.Emit()
}

func (l *ShipList) AddEngine(c Component) {
	l.Engines[c.ID] = &c
	l.changed.Emit()
}

func (l *ShipList) AddBeam(c Component) {
	l.Beams[c.ID] = &c
	l.changed.Emit()
}

func (l *ShipList) AddLauncher(t Launcher) {
	l.Launchers[t.ID] = &t
	l.changed.Emit()
}

func (l *ShipList) AssignHull(player, slot, hullID int) {
	l.Assignments.Add(player, slot, hullID)
	l.changed.Emit()
}

// HullAssignments maps each player's truehull slots (1-based) to hull ids.
type HullAssignments struct {
	byPlayer map[int][]int
}

func (a *HullAssignments) Add(player, slot, hullID int) {
	if slot <= 0 {
		return
	}
	if a.byPlayer == nil {
		a.byPlayer = map[int][]int{}
	}
	s := a.byPlayer[player]
	for len(s) < slot {
		s = append(s, 0)
	}
	s[slot-1] = hullID
	a.byPlayer[player] = s
}

// Index returns the slot at which player can build hullID, or 0.
func (a HullAssignments) Index(player, hullID int) int {
	if hullID <= 0 {
		return 0
	}
	for i, h := range a.byPlayer[player] {
		if h == hullID {
			return i + 1
		}
	}
	return 0
}

// HullAt returns the hull id in a player's slot, or 0.
func (a HullAssignments) HullAt(player, slot int) int {
	s := a.byPlayer[player]
	if slot <= 0 || slot > len(s) {
		return 0
	}
	return s[slot-1]
}

func (a HullAssignments) NumSlots(player int) int { return len(a.byPlayer[player]) }

func Load(configDir string) (*ShipList, error) {
	l := New()

	var hulls []Hull
	if err := loadJSON(l, configDir, "hulls.json", &hulls); err != nil {
		return nil, err
	}
	for _, h := range hulls {
		if err := checkComponent("hulls.json", h.Component, l.Hulls[h.ID] != nil); err != nil {
			return nil, err
		}
		l.Hulls[h.ID] = &h
	}

	var engines []Component
	if err := loadJSON(l, configDir, "engines.json", &engines); err != nil {
		return nil, err
	}
	for _, e := range engines {
		if err := checkComponent("engines.json", e, l.Engines[e.ID] != nil); err != nil {
			return nil, err
		}
		l.Engines[e.ID] = &e
	}

	var beams []Component
	if err := loadJSON(l, configDir, "beams.json", &beams); err != nil {
		return nil, err
	}
	for _, b := range beams {
		if err := checkComponent("beams.json", b, l.Beams[b.ID] != nil); err != nil {
			return nil, err
		}
		l.Beams[b.ID] = &b
	}

	var launchers []Launcher
	if err := loadJSON(l, configDir, "torpedoes.json", &launchers); err != nil {
		return nil, err
	}
	for _, t := range launchers {
		if err := checkComponent("torpedoes.json", t.Component, l.Launchers[t.ID] != nil); err != nil {
			return nil, err
		}
		l.Launchers[t.ID] = &t
	}

	var truehull map[int][]int
	if err := loadJSON(l, configDir, "truehull.json", &truehull); err != nil {
		return nil, err
	}
	for player, hullIDs := range truehull {
		for i, id := range hullIDs {
			if id != 0 && l.Hulls[id] == nil {
				return nil, fmt.Errorf("truehull.json: player %d slot %d: unknown hull %d", player, i+1, id)
			}
			l.Assignments.Add(player, i+1, id)
		}
	}
	return l, nil
}

func loadJSON(l *ShipList, dir, name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	l.Digests[name] = sha256Hex(raw)
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func checkComponent(file string, c Component, dup bool) error {
	if c.ID <= 0 {
		return fmt.Errorf("%s: bad id %d", file, c.ID)
	}
	if dup {
		return fmt.Errorf("%s: duplicate id %d", file, c.ID)
	}
	if c.Name == "" {
		return fmt.Errorf("%s: id %d: empty name", file, c.ID)
	}
	if c.Tech < 1 || c.Tech > model.MaxTechLevel {
		return fmt.Errorf("%s: id %d: tech %d out of range", file, c.ID, c.Tech)
	}
	return nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func keys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
