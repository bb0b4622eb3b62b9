package cost

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Kind int

const (
	Tritanium Kind = iota
	Duranium
	Molybdenum
	Supplies
	Money
	numKinds
)

// Kinds lists all cost kinds in display order.
var Kinds = [numKinds]Kind{Tritanium, Duranium, Molybdenum, Supplies, Money}

func (k Kind) String() string {
	switch k {
	case Tritanium:
		return "Tritanium"
	case Duranium:
		return "Duranium"
	case Molybdenum:
		return "Molybdenum"
	case Supplies:
		return "Supplies"
	case Money:
		return "Money"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) Letter() string {
	switch k {
	case Tritanium:
		return "T"
	case Duranium:
		return "D"
	case Molybdenum:
		return "M"
	case Supplies:
		return "S"
	case Money:
		return "$"
	default:
		return "?"
	}
}

// Cost is an additive resource vector. The zero value costs nothing.
// Negative amounts are refunds.
type Cost struct {
	v [numKinds]int32
}

func Of(k Kind, n int32) Cost {
	var c Cost
	c.Set(k, n)
	return c
}

func (c Cost) Get(k Kind) int32 {
	if k < 0 || k >= numKinds {
		return 0
	}
	return c.v[k]
}

func (c *Cost) Set(k Kind, n int32) {
	if k < 0 || k >= numKinds {
		return
	}
	c.v[k] = n
}

func (c *Cost) AddTo(k Kind, n int32) {
	if k < 0 || k >= numKinds {
		return
	}
	c.v[k] += n
}

// Arithmetic saturates at the int32 range instead of wrapping.

func (c Cost) Add(o Cost) Cost {
	for i := range c.v {
		c.v[i] = saturate(int64(c.v[i]) + int64(o.v[i]))
	}
	return c
}

func (c Cost) Sub(o Cost) Cost {
	for i := range c.v {
		c.v[i] = saturate(int64(c.v[i]) - int64(o.v[i]))
	}
	return c
}

func (c Cost) Scale(n int32) Cost {
	for i := range c.v {
		c.v[i] = saturate(int64(c.v[i]) * int64(n))
	}
	return c
}

func saturate(n int64) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int32(n)
}

func (c Cost) Neg() Cost { return c.Scale(-1) }

func (c Cost) IsZero() bool { return c == Cost{} }

// IsNonNegative reports whether no kind is a refund.
func (c Cost) IsNonNegative() bool {
	for _, n := range c.v {
		if n < 0 {
			return false
		}
	}
	return true
}

// String renders the cost as "13T 3D 12M 50S 118$", skipping zero kinds.
func (c Cost) String() string {
	parts := make([]string, 0, numKinds)
	for _, k := range Kinds {
		if n := c.v[k]; n != 0 {
			parts = append(parts, strconv.FormatInt(int64(n), 10)+k.Letter())
		}
	}
	return strings.Join(parts, " ")
}

// Parse reads a cost in either "10T 15$" or "T100 D100 M100" spelling.
// "MC" is accepted for money; letters are case-insensitive.
func Parse(s string) (Cost, error) {
	var (
		c       Cost
		num     int32
		hasNum  bool
		pending = Kind(-1)
	)
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == ',':
			i++
		case ch == '-' || ch == '+' || (ch >= '0' && ch <= '9'):
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, err := strconv.ParseInt(s[i:j], 10, 32)
			if err != nil {
				return Cost{}, fmt.Errorf("cost %q: bad number %q", s, s[i:j])
			}
			i = j
			switch {
			case pending >= 0:
				c.AddTo(pending, int32(n))
				pending = -1
			case hasNum:
				return Cost{}, fmt.Errorf("cost %q: number without resource", s)
			default:
				num, hasNum = int32(n), true
			}
		default:
			k, width, ok := kindAt(s[i:])
			if !ok {
				return Cost{}, fmt.Errorf("cost %q: unexpected %q", s, s[i:i+1])
			}
			i += width
			switch {
			case hasNum:
				c.AddTo(k, num)
				hasNum = false
			case pending >= 0:
				return Cost{}, fmt.Errorf("cost %q: resource without number", s)
			default:
				pending = k
			}
		}
	}
	if hasNum || pending >= 0 {
		return Cost{}, fmt.Errorf("cost %q: incomplete term", s)
	}
	return c, nil
}

func MustParse(s string) Cost {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func kindAt(s string) (Kind, int, bool) {
	if len(s) >= 2 && strings.EqualFold(s[:2], "MC") {
		return Money, 2, true
	}
	switch s[0] {
	case 'T', 't':
		return Tritanium, 1, true
	case 'D', 'd':
		return Duranium, 1, true
	case 'M', 'm':
		return Molybdenum, 1, true
	case 'S', 's':
		return Supplies, 1, true
	case '$':
		return Money, 1, true
	}
	return 0, 0, false
}

func (c Cost) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Cost) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = v
	return nil
}

func (c Cost) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cost) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
