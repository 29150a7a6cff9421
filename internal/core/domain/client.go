package domain

import (
	"sort"
	"time"
)

// DebtKey is the pseudo status used for clients with outstanding debt.
const DebtKey = "has_debt"

// ActionStatusBitmap maps an ActionStatusType key to whether the flag is set.
type ActionStatusBitmap map[string]bool

// Has reports whether key is set.
func (b ActionStatusBitmap) Has(key string) bool {
	return b[key]
}

// Clone returns an independent copy of b. A nil bitmap clones to an empty one.
func (b ActionStatusBitmap) Clone() ActionStatusBitmap {
	out := make(ActionStatusBitmap, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Normalize returns a copy of b holding an entry for every key in types.
// Missing keys are added as false; keys with no matching type are kept.
func (b ActionStatusBitmap) Normalize(types []ActionStatusType) ActionStatusBitmap {
	out := b.Clone()
	for _, t := range types {
		if _, ok := out[t.Key]; !ok {
			out[t.Key] = false
		}
	}
	return out
}

// Merge returns a copy of b with the entries of patch applied on top.
func (b ActionStatusBitmap) Merge(patch ActionStatusBitmap) ActionStatusBitmap {
	out := b.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Keys returns the bitmap keys sorted lexically.
func (b ActionStatusBitmap) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flag is a display view of one bitmap entry.
type Flag struct {
	Key    string
	Name   string
	Color  string
	Active bool
	// Legacy is set when no ActionStatusType carries Key anymore.
	Legacy bool
}

// Flags resolves every entry of b against the registry. Registered keys come
// first in catalog order, followed by legacy keys in lexical order.
func (b ActionStatusBitmap) Flags(types []ActionStatusType) []Flag {
	flags := make([]Flag, 0, len(b))
	known := make(map[string]struct{}, len(types))
	for _, t := range types {
		known[t.Key] = struct{}{}
		flags = append(flags, Flag{
			Key:    t.Key,
			Name:   ResolveActionName(t.Key, types),
			Color:  ResolveActionColor(t.Key, types),
			Active: b[t.Key],
		})
	}
	for _, k := range b.Keys() {
		if _, ok := known[k]; ok {
			continue
		}
		flags = append(flags, Flag{
			Key:    k,
			Name:   ResolveActionName(k, types),
			Color:  ResolveActionColor(k, types),
			Active: b[k],
			Legacy: true,
		})
	}
	return flags
}

// Client is a tracked customer record.
type Client struct {
	ID                   string             `json:"id" bson:"_id"`
	FirstName            string             `json:"first_name" bson:"first_name"`
	LastName             string             `json:"last_name" bson:"last_name"`
	Phone                string             `json:"phone" bson:"phone"`
	ClientStatus         string             `json:"client_status" bson:"client_status"`
	CRMLink              string             `json:"crm_link" bson:"crm_link"`
	ExpectedOrderSets    int                `json:"expected_order_sets" bson:"expected_order_sets"`
	ExpectedOrderAmount  float64            `json:"expected_order_amount" bson:"expected_order_amount"`
	SetsOrderedThisMonth int                `json:"sets_ordered_this_month" bson:"sets_ordered_this_month"`
	AmountThisMonth      float64            `json:"amount_this_month" bson:"amount_this_month"`
	Debt                 float64            `json:"debt" bson:"debt"`
	LastContactDate      string             `json:"last_contact_date,omitempty" bson:"last_contact_date,omitempty"` // YYYY-MM-DD
	TaskDescription      string             `json:"task_description" bson:"task_description"`
	Comment              string             `json:"comment" bson:"comment"`
	ActionStatus         ActionStatusBitmap `json:"action_status" bson:"action_status"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
}

// InDebt reports whether the client owes money.
func (c *Client) InDebt() bool {
	return c.Debt > 0
}

// FullName joins first and last name.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
