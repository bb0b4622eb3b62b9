package tuning

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/signal"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// Tech cost formulas.
const (
	TechCostStandard = 1 // 100 per level passed: 1->2 costs 100, 2->3 costs 200
	TechCostFlat     = 2 // 100 per level
)

// HostConfiguration holds the host options consulted by build transactions.
// Changes made through Modify emit OnChange.
type HostConfiguration struct {
	StarbaseCost          cost.Cost      `yaml:"starbase_cost" validate:"gte=0"`
	BaseTechCost          int            `yaml:"base_tech_cost" validate:"oneof=1 2"`
	BaseFighterCost       cost.Cost      `yaml:"base_fighter_cost" validate:"gte=0"`
	MaximumFightersOnBase int            `yaml:"maximum_fighters_on_base" validate:"gte=0"`
	MaximumDefenseOnBase  int            `yaml:"maximum_defense_on_base" validate:"gte=0"`
	StructureCost         StructureCosts `yaml:"structure_cost"`

	changed signal.Signal
}

type StructureCosts struct {
	Mines       cost.Cost `yaml:"mines" validate:"gte=0"`
	Factories   cost.Cost `yaml:"factories" validate:"gte=0"`
	Defense     cost.Cost `yaml:"defense" validate:"gte=0"`
	BaseDefense cost.Cost `yaml:"base_defense" validate:"gte=0"`
}

func Defaults() *HostConfiguration {
	return &HostConfiguration{
		StarbaseCost:          cost.MustParse("402T 120D 340M 900$"),
		BaseTechCost:          TechCostStandard,
		BaseFighterCost:       cost.MustParse("3T 2M 100$"),
		MaximumFightersOnBase: 60,
		MaximumDefenseOnBase:  200,
		StructureCost: StructureCosts{
			Mines:       cost.MustParse("4$ 1S"),
			Factories:   cost.MustParse("3$ 1S"),
			Defense:     cost.MustParse("10$ 1S"),
			BaseDefense: cost.MustParse("10$ 1D"),
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (*HostConfiguration, error) {
	c := Defaults()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("host.yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("host.yaml: %w", err)
	}
	return c, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		// Costs validate as their smallest amount, so "gte=0" rejects refunds.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			c, ok := field.Interface().(cost.Cost)
			if !ok {
				return nil
			}
			lowest := int64(0)
			for _, k := range cost.Kinds {
				if n := int64(c.Get(k)); n < lowest {
					lowest = n
				}
			}
			return lowest
		}, cost.Cost{})
		validateInst = v
	})
	return validateInst
}

func (c *HostConfiguration) Validate() error {
	return validatorInstance().Struct(c)
}

func (c *HostConfiguration) OnChange() *signal.Signal { return &c.changed }

func (c *HostConfiguration) NotifyListeners() { c.changed.Emit() }

// Modify applies fn and notifies listeners.
func (c *HostConfiguration) Modify(fn func(*HostConfiguration)) {
	fn(c)
	c.changed.Emit()
}

// TechCost is the money needed to move a base tech level from one value to
// another. Lowering a level refunds what raising it would cost.
func (c *HostConfiguration) TechCost(area model.TechLevel, from, to int) cost.Cost {
	if from == to {
		return cost.Cost{}
	}
	if to < from {
		return c.TechCost(area, to, from).Neg()
	}
	var n int32
	switch c.BaseTechCost {
	case TechCostFlat:
		n = int32(100 * (to - from))
	default:
		// 100 * sum(from .. to-1)
		n = int32(50 * (to*(to-1) - from*(from-1)))
	}
	return cost.Of(cost.Money, n)
}

func (c *HostConfiguration) BuildingCost(b model.Building) cost.Cost {
	switch b {
	case model.Mines:
		return c.StructureCost.Mines
	case model.Factories:
		return c.StructureCost.Factories
	case model.Defense:
		return c.StructureCost.Defense
	case model.BaseDefense:
		return c.StructureCost.BaseDefense
	}
	return cost.Cost{}
}
