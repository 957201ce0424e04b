package armor

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// TierCount is the number of armor sets; tiers run from 0 to TierCount-1.
	TierCount = 100

	// MaxTier is the last tier a knight can reach.
	MaxTier = TierCount - 1

	// PowerGrowth is the per-tier power multiplier base.
	PowerGrowth = 1.12
)

// Set describes one armor tier. Colors are CSS color strings.
type Set struct {
	Name            string  `json:"name"`
	Tier            int     `json:"tier"`
	Primary         string  `json:"primary"`
	Secondary       string  `json:"secondary"`
	Accent          string  `json:"accent"`
	PowerMultiplier float64 `json:"powerMultiplier"`
	Description     string  `json:"description"`
}

type earlyConfig struct {
	name, primary, secondary, accent, description string
}

var earlyConfigs = [10]earlyConfig{
	{"Scrap Plate", "#7f8c8d", "#2c3e50", "#95a5a6", "Barely holding together."},
	{"Initiate Mail", "#ffffff", "#bdc3c7", "#ecf0f1", "Standard squire attire."},
	{"Abyssal Guard", "#0d2137", "#050b14", "#1b3a5b", "Darkness forged in the deep."},
	{"Platinum Ward", "#e5e4e2", "#7f8c8d", "#ffffff", "Noble brilliance."},
	{"Cobalt Sentinel", "#0047ab", "#002366", "#8eaadb", "Tough as the deep sea."},
	{"Emerald Knight", "#50c878", "#006400", "#90ee90", "Nature's chosen protector."},
	{"Ruby Paladin", "#e0115f", "#8b0000", "#ff69b4", "Burning with resolve."},
	{"Amethyst Sentry", "#9966cc", "#4b0082", "#d8bfd8", "Mystical resonance."},
	{"Obsidian Dread", "#282828", "#000000", "#444444", "Cold and unyielding."},
	{"Diamond Champion", "#b9f2ff", "#00d4ff", "#ffffff", "The pinnacle of purity."},
}

var (
	genericPrefixes = [10]string{"Warden", "Lord", "Hero", "Avenger", "Slayer", "Monarch", "Deity", "Titan", "Spectre", "Zenith"}
	genericEras     = [10]string{"Void", "Light", "Shadow", "Thunder", "Frost", "Magma", "Chaos", "Aether", "Spirit", "Cosmos"}
)

// catalog is built once at package init and never mutated.
var catalog = generate()

// PowerMultiplier returns 1.12^tier.
func PowerMultiplier(tier int) float64 {
	return math.Pow(PowerGrowth, float64(tier))
}

func generate() [TierCount]Set {
	var sets [TierCount]Set
	for i := 0; i < TierCount; i++ {
		if i < len(earlyConfigs) {
			c := earlyConfigs[i]
			sets[i] = Set{
				Name:            c.name,
				Tier:            i,
				Primary:         c.primary,
				Secondary:       c.secondary,
				Accent:          c.accent,
				PowerMultiplier: PowerMultiplier(i),
				Description:     c.description,
			}
			continue
		}

		hue := math.Mod(float64(i)*13.7, 360)
		sets[i] = Set{
			Name:            fmt.Sprintf("%s of %s", genericPrefixes[i%10], genericEras[(i/10)%10]),
			Tier:            i,
			Primary:         hsl(hue, 60, 50),
			Secondary:       hsl(hue, 70, 20),
			Accent:          hsl(math.Mod(hue+40, 360), 80, 70),
			PowerMultiplier: PowerMultiplier(i),
			Description:     fmt.Sprintf("Advanced tier %d equipment. Resonance detected.", i),
		}
	}
	return sets
}

func hsl(hue float64, saturation, lightness int) string {
	return fmt.Sprintf("hsl(%s, %d%%, %d%%)", strconv.FormatFloat(hue, 'f', -1, 64), saturation, lightness)
}

// All returns a copy of the full catalog ordered by tier.
func All() []Set {
	out := make([]Set, TierCount)
	copy(out, catalog[:])
	return out
}

// ForLevel returns the armor worn at the given level, clamped into [0, MaxTier].
func ForLevel(level int) Set {
	return catalog[clampTier(level)]
}

func clampTier(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxTier {
		return MaxTier
	}
	return level
}
