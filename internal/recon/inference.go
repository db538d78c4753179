package recon

// The team/category inference registry defaults fields when the engine
// synthesizes records: a completed purchase knows its team and needs a
// category; a low-stock draft knows the item's category and needs a team.
//
// One registration list drives both directions. Several teams share a
// category, so the derived inverse keeps the first registration and a
// category-to-team round trip is not identity for the later ones.

// InferencePair is one team-to-category registration.
type InferencePair struct {
	Team     string
	Category string
}

var inferencePairs = []InferencePair{
	{"Avionics", "Electronics"},
	{"Software", "Electronics"},
	{"Propulsion", "Propulsion"},
	{"Structures", "Materials"},
	{"Composites", "Materials"},
	{"Recovery", "Recovery Systems"},
	{"Payload", "Instrumentation"},
	{"Operations", "General Supplies"},
}

const (
	fallbackCategory = "General Supplies"
	fallbackTeam     = "Operations"
)

var (
	teamToCategory map[string]string
	categoryToTeam map[string]string
)

func init() {
	teamToCategory = make(map[string]string, len(inferencePairs))
	categoryToTeam = make(map[string]string)
	for _, p := range inferencePairs {
		if _, dup := teamToCategory[p.Team]; dup {
			panic("inference registry: duplicate team " + p.Team)
		}
		teamToCategory[p.Team] = p.Category
		if _, ok := categoryToTeam[p.Category]; !ok {
			categoryToTeam[p.Category] = p.Team
		}
	}
}

// CategoryFromTeam returns the default category for items a team purchases.
func CategoryFromTeam(team string) string {
	if c, ok := teamToCategory[team]; ok {
		return c
	}
	return fallbackCategory
}

// TeamFromCategory returns the team that by default owns a category's
// purchases. Inverse of CategoryFromTeam only for first-registered teams.
func TeamFromCategory(category string) string {
	if t, ok := categoryToTeam[category]; ok {
		return t
	}
	return fallbackTeam
}

// InferencePairs exposes the registration list for consistency reporting.
func InferencePairs() []InferencePair {
	out := make([]InferencePair, len(inferencePairs))
	copy(out, inferencePairs)
	return out
}
