package armor

// Feature is a piece of visible gear unlocked at a tier.
type Feature struct {
	Name    string
	MinTier int
}

var features = []Feature{
	{"Visor slit", 2},
	{"Reinforced shield", 3},
	{"Chest plate crest", 9},
	{"Sword engraving", 9},
	{"Advanced helmet", 9},
	{"Pauldrons", 15},
	{"Plume", 25},
	{"Cape", 40},
	{"Sword glow", 50},
	{"Wings", 65},
	{"Double wings", 75},
	{"Halo", 80},
	{"Aura", 90},
}

// Features lists the gear unlocked at the given tier, in unlock order.
func Features(tier int) []Feature {
	tier = clampTier(tier)
	var out []Feature
	for _, f := range features {
		if tier >= f.MinTier {
			out = append(out, f)
		}
	}
	return out
}

// NextFeature returns the next gear milestone above tier, if any.
func NextFeature(tier int) (Feature, bool) {
	tier = clampTier(tier)
	for _, f := range features {
		if f.MinTier > tier {
			return f, true
		}
	}
	return Feature{}, false
}
