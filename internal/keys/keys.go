package keys

import "strings"

// SpeciesKey produces the canonical immune-memory key for a pathogen
// species name. Behavior: trims, lower-cases and replaces spaces with
// underscores so the same species maps to the same signature across
// battles regardless of display casing. Suitable for stable DB keys.
func SpeciesKey(species string) string {
	s := strings.TrimSpace(species)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
