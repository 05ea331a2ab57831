package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semtax/taxonomy"
)

// Profile determines which entries, by provenance, are included in an export.
type Profile string

const (
	// ProfileAsserted includes only entries stated by a modeler.
	ProfileAsserted Profile = "asserted"

	// ProfileInferred includes construction- and reasoner-derived entries.
	ProfileInferred Profile = "inferred"

	// ProfileAll includes every entry.
	ProfileAll Profile = "all"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeAsserted indicates whether asserted entries are exported.
	IncludeAsserted bool

	// IncludeConstruction indicates whether entries restated by the
	// modeling helpers (symmetric halves) are exported.
	IncludeConstruction bool

	// IncludeReasoner indicates whether entries written by a reasoning pass
	// are exported.
	IncludeReasoner bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileAsserted: {
		Name:            ProfileAsserted,
		Description:     "Asserted entries only",
		IncludeAsserted: true,
	},
	ProfileInferred: {
		Name:                ProfileInferred,
		Description:         "Entries derived by construction or by the reasoner",
		IncludeConstruction: true,
		IncludeReasoner:     true,
	},
	ProfileAll: {
		Name:                ProfileAll,
		Description:         "Every entry regardless of provenance",
		IncludeAsserted:     true,
		IncludeConstruction: true,
		IncludeReasoner:     true,
	},
}

// GetProfileConfig returns the configuration for a profile. Unknown profiles
// fall back to ProfileAll.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileAll]
}

// ParseProfile validates a profile name.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return ProfileAll, nil
	}
	if _, ok := Profiles[p]; !ok {
		return "", fmt.Errorf("unsupported profile: %s (valid: asserted, inferred, all)", s)
	}
	return p, nil
}

// Includes reports whether entries of the given provenance belong to the
// profile.
func (c ProfileConfig) Includes(p taxonomy.Provenance) bool {
	switch p {
	case taxonomy.Asserted:
		return c.IncludeAsserted
	case taxonomy.DerivedByConstruction:
		return c.IncludeConstruction
	case taxonomy.DerivedByReasoner:
		return c.IncludeReasoner
	default:
		return false
	}
}
