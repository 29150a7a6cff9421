package domain

import (
	"regexp"
	"time"
)

// DefaultTypeColor is assigned to new status types created without a color.
const DefaultTypeColor = "#3B82F6"

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Reserved names share the statistics and filter namespace with action keys.
const (
	TotalClientsKey = "total_clients"
	AllKey          = "all"
)

// reservedKeys cannot be used as action keys.
var reservedKeys = map[string]bool{
	DebtKey:         true,
	TotalClientsKey: true,
	AllKey:          true,
}

// ClientStatusType is one entry of the controlled vocabulary for a client's
// overall status. Clients reference it by Name.
type ClientStatusType struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Color     string    `json:"color" bson:"color"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ActionStatusType defines one independently toggleable action flag. Key is
// the bitmap field name and is treated as the flag's identity.
type ActionStatusType struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Key       string    `json:"key" bson:"key"`
	Color     string    `json:"color" bson:"color"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ValidKey reports whether key can be used as a bitmap field name.
// Keys end up as document field paths, so dots and dollars are excluded.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key) && !reservedKeys[key]
}

// ReservedKey reports whether key is one of the fixed statistics or filter
// names.
func ReservedKey(key string) bool {
	return reservedKeys[key]
}

// ActionKeys returns the keys of types in catalog order.
func ActionKeys(types []ActionStatusType) []string {
	keys := make([]string, 0, len(types))
	for _, t := range types {
		keys = append(keys, t.Key)
	}
	return keys
}

// DefaultActionStatusTypes is the catalog seeded into an empty registry.
func DefaultActionStatusTypes() []ActionStatusType {
	return []ActionStatusType{
		{Name: "Made an order", Key: "made_order", Color: "#22C55E"},
		{Name: "Completed survey", Key: "completed_survey", Color: "#8B5CF6"},
		{Name: "Notified about promotion", Key: "notified_about_promotion", Color: "#8B5CF6"},
		{Name: "Has additional questions", Key: "has_additional_questions", Color: "#EF4444"},
		{Name: "Needs a callback", Key: "need_callback", Color: "#F59E0B"},
		{Name: "Not answering", Key: "not_answering", Color: "#EF4444"},
		{Name: "Planning an order", Key: "planning_order", Color: "#EAB308"},
	}
}
