package domain

// Fallback colors used when the registry has no entry for a status.
const (
	NeutralColor             = "#6B7280"
	DefaultClientStatusColor = "#3B82F6"
	DebtColor                = "#EF4444"
)

// fallbackActionColors covers the well-known action keys and the debt marker.
var fallbackActionColors = map[string]string{
	"made_order":               "#22C55E",
	"completed_survey":         "#8B5CF6",
	"notified_about_promotion": "#8B5CF6",
	"has_additional_questions": "#EF4444",
	"need_callback":            "#F59E0B",
	"not_answering":            "#EF4444",
	"planning_order":           "#EAB308",
	DebtKey:                    DebtColor,
}

// ResolveActionColor returns the display color for an action status key.
// The live registry entry wins; otherwise the static palette applies, and
// anything unrecognised is neutral gray. It never returns an empty string.
func ResolveActionColor(key string, types []ActionStatusType) string {
	for _, t := range types {
		if t.Key == key && t.Color != "" {
			return t.Color
		}
	}
	if c, ok := fallbackActionColors[key]; ok {
		return c
	}
	return NeutralColor
}

// ResolveClientStatusColor returns the display color for a client_status value.
// Dangling names (no matching type) get DefaultClientStatusColor.
func ResolveClientStatusColor(name string, types []ClientStatusType) string {
	for _, t := range types {
		if t.Name == name && t.Color != "" {
			return t.Color
		}
	}
	return DefaultClientStatusColor
}

// ResolveActionName returns the registry name for key, or key itself.
func ResolveActionName(key string, types []ActionStatusType) string {
	for _, t := range types {
		if t.Key == key && t.Name != "" {
			return t.Name
		}
	}
	return key
}

// IsWellKnownKey reports whether key has a static fallback color.
func IsWellKnownKey(key string) bool {
	_, ok := fallbackActionColors[key]
	return ok && key != DebtKey
}
