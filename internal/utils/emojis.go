package utils

import "strings"

// Helpers for frequency labels and emojis.
func GetFrequencyName(freq string) string {
	switch freq {
	case "once":
		return "Once"
	case "daily":
		return "Daily"
	case "weekly":
		return "Weekly"
	default:
		return freq
	}
}

func GetFrequencyEmoji(freq string) string {
	switch freq {
	case "once":
		return "⚔️"
	case "daily":
		return "☀️"
	case "weekly":
		return "🗓"
	default:
		return "📌"
	}
}

// ProgressBar renders filled out of total cells, e.g. "▰▰▰▱▱".
func ProgressBar(filled, total int) string {
	if total <= 0 {
		return ""
	}
	if filled < 0 {
		filled = 0
	}
	if filled > total {
		filled = total
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", total-filled)
}
