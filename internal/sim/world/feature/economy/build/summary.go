package build

import "github.com/stefanreuther/c2ng-sub002/internal/sim/cost"

// SummaryItem is one line of a cost breakdown. Cost is the line total.
type SummaryItem struct {
	Label      string    `json:"label"`
	Multiplier int       `json:"multiplier"`
	Cost       cost.Cost `json:"cost"`
}

// Summary is an ordered cost breakdown.
type Summary struct {
	Items []SummaryItem `json:"items"`
}

func (s *Summary) add(label string, n int, c cost.Cost) {
	s.Items = append(s.Items, SummaryItem{Label: label, Multiplier: n, Cost: c})
}

func (s Summary) Total() cost.Cost {
	var t cost.Cost
	for _, it := range s.Items {
		t = t.Add(it.Cost)
	}
	return t
}
