package bubble

import "strings"

// Palette holds the colors synthetic bubbles are drawn with.
var Palette = []string{
	"#3B82F6",
	"#F97316",
	"#10B981",
	"#8B5CF6",
	"#EC4899",
	"#F59E0B",
	"#EF4444",
	"#06B6D4",
	"#84CC16",
	"#F43F5E",
	"#8B5A2B",
	"#6366F1",
}

// EntryColor is a named color a visitor can pick on the entry screen.
type EntryColor struct {
	Name  string
	Value string
	// gradient stops used for shading the swatch
	Light string
	Dark  string
}

var EntryColors = []EntryColor{
	{Name: "Ocean Blue", Value: "#3B82F6", Light: "#60A5FA", Dark: "#2563EB"},
	{Name: "Sunset Orange", Value: "#F97316", Light: "#FB923C", Dark: "#EA580C"},
	{Name: "Forest Green", Value: "#10B981", Light: "#34D399", Dark: "#059669"},
	{Name: "Royal Purple", Value: "#8B5CF6", Light: "#A78BFA", Dark: "#7C3AED"},
	{Name: "Rose Pink", Value: "#EC4899", Light: "#F472B6", Dark: "#DB2777"},
	{Name: "Golden Yellow", Value: "#F59E0B", Light: "#FBBF24", Dark: "#D97706"},
}

// LookupEntryColor finds an entry color by hex value or case-insensitive name.
func LookupEntryColor(s string) (EntryColor, bool) {
	for _, c := range EntryColors {
		if strings.EqualFold(c.Value, s) || strings.EqualFold(c.Name, s) {
			return c, true
		}
	}
	return EntryColor{}, false
}
