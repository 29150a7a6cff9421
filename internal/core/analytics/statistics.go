// Package analytics derives read views from the client collection: per-status
// counters, global monetary summaries, and the single-criterion filter.
//
// Every function here is pure. Results are recomputed from scratch on each
// call; callers own any caching and its invalidation.
package analytics

import (
	"encoding/json"
	"math"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// Statistics holds per-status client counters.
type Statistics struct {
	TotalClients int
	HasDebt      int
	// Actions has one counter per ActionStatusType key, including zeroes.
	Actions map[string]int
}

// MarshalJSON flattens Actions next to the fixed counters, matching the
// /clients/statistics wire shape.
func (s Statistics) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(s.Actions)+2)
	for k, v := range s.Actions {
		out[k] = v
	}
	out[domain.TotalClientsKey] = s.TotalClients
	out[domain.DebtKey] = s.HasDebt
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Statistics) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Actions = make(map[string]int, len(raw))
	for k, v := range raw {
		switch k {
		case domain.TotalClientsKey:
			s.TotalClients = v
		case domain.DebtKey:
			s.HasDebt = v
		default:
			s.Actions[k] = v
		}
	}
	return nil
}

// Count returns the counter for an action key, has_debt or total_clients.
func (s Statistics) Count(key string) int {
	switch key {
	case domain.TotalClientsKey:
		return s.TotalClients
	case domain.DebtKey:
		return s.HasDebt
	}
	return s.Actions[key]
}

// ComputeStatistics counts clients per action key and in debt.
func ComputeStatistics(clients []domain.Client, types []domain.ActionStatusType) Statistics {
	stats := Statistics{
		TotalClients: len(clients),
		Actions:      make(map[string]int, len(types)),
	}
	for _, t := range types {
		stats.Actions[t.Key] = 0
	}
	for i := range clients {
		c := &clients[i]
		if c.InDebt() {
			stats.HasDebt++
		}
		for _, t := range types {
			if c.ActionStatus.Has(t.Key) {
				stats.Actions[t.Key]++
			}
		}
	}
	return stats
}

// Summary holds global quantity and money totals.
type Summary struct {
	TotalExpectedSets   int     `json:"total_expected_sets"`
	TotalExpectedAmount float64 `json:"total_expected_amount"`
	TotalOrderedSets    int     `json:"total_ordered_sets"`
	TotalOrderedAmount  float64 `json:"total_ordered_amount"`
	TotalDebt           float64 `json:"total_debt"`
}

// ComputeSummary sums order expectations, this month's orders and debt over
// all clients. Amounts are rounded to cents.
func ComputeSummary(clients []domain.Client) Summary {
	var s Summary
	for i := range clients {
		c := &clients[i]
		s.TotalExpectedSets += c.ExpectedOrderSets
		s.TotalExpectedAmount += c.ExpectedOrderAmount
		s.TotalOrderedSets += c.SetsOrderedThisMonth
		s.TotalOrderedAmount += c.AmountThisMonth
		s.TotalDebt += c.Debt
	}
	s.TotalExpectedAmount = roundCents(s.TotalExpectedAmount)
	s.TotalOrderedAmount = roundCents(s.TotalOrderedAmount)
	s.TotalDebt = roundCents(s.TotalDebt)
	return s
}

// Progress is the ordered/expected amount ratio.
type Progress struct {
	// Ratio is unclamped; over-delivery yields values above 1.
	Ratio float64
	// Percent is Ratio*100 clamped to [0, 100], for progress bar fills.
	Percent float64
}

// ComputeProgress derives Progress from a summary.
func ComputeProgress(s Summary) Progress {
	if s.TotalExpectedAmount <= 0 {
		return Progress{}
	}
	ratio := s.TotalOrderedAmount / s.TotalExpectedAmount
	return Progress{
		Ratio:   ratio,
		Percent: math.Max(0, math.Min(100, ratio*100)),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
