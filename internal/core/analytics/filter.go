package analytics

import (
	"strings"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// CriterionAll is the identity criterion.
const CriterionAll = domain.AllKey

// CriterionKind tells which client attribute a Criterion tests.
type CriterionKind int

const (
	MatchAll CriterionKind = iota
	MatchAction
	MatchDebt
	MatchClientStatus
)

// Criterion is the single active filter.
type Criterion struct {
	Kind  CriterionKind
	Value string
}

// ResolveCriterion interprets a raw status_filter value. Precedence: empty or
// "all", then "has_debt", then action keys (registered, well-known or still
// carried by some client after its type was deleted), then an exact
// client_status literal. Surrounding spaces are ignored for the reserved
// names and keys but kept for the client_status comparison.
func ResolveCriterion(raw string, types []domain.ActionStatusType, clients []domain.Client) Criterion {
	key := strings.TrimSpace(raw)
	switch key {
	case "", CriterionAll:
		return Criterion{Kind: MatchAll}
	case domain.DebtKey:
		return Criterion{Kind: MatchDebt, Value: key}
	}
	if isActionKey(key, types, clients) {
		return Criterion{Kind: MatchAction, Value: key}
	}
	return Criterion{Kind: MatchClientStatus, Value: raw}
}

func isActionKey(key string, types []domain.ActionStatusType, clients []domain.Client) bool {
	for _, t := range types {
		if t.Key == key {
			return true
		}
	}
	if domain.IsWellKnownKey(key) {
		return true
	}
	for i := range clients {
		if _, ok := clients[i].ActionStatus[key]; ok {
			return true
		}
	}
	return false
}

// Match reports whether c satisfies the criterion.
func (cr Criterion) Match(c *domain.Client) bool {
	switch cr.Kind {
	case MatchAction:
		return c.ActionStatus.Has(cr.Value)
	case MatchDebt:
		return c.InDebt()
	case MatchClientStatus:
		return c.ClientStatus == cr.Value
	default:
		return true
	}
}

// FilterByStatus returns the clients matching cr, preserving order. MatchAll
// returns clients unchanged.
func FilterByStatus(clients []domain.Client, cr Criterion) []domain.Client {
	if cr.Kind == MatchAll {
		return clients
	}
	out := make([]domain.Client, 0, len(clients))
	for i := range clients {
		if cr.Match(&clients[i]) {
			out = append(out, clients[i])
		}
	}
	return out
}
