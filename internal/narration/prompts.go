package narration

import (
	"fmt"
	"strconv"
	"strings"

	"knight-quest/internal/armor"
)

func FlavorPrompt(set armor.Set, power float64, tasksRemaining int) string {
	return fmt.Sprintf(
		"You are a pixel-art RPG narrator. The hero is wearing %s (Description: %s) with a power level of %s. "+
			"They need to complete %d more tasks to reach the next chest. "+
			"Give a very short (max 15 words) motivational or flavor text line about their quest. "+
			"Keep it in character for a fantasy game.",
		set.Name, set.Description, strconv.FormatFloat(power, 'f', 0, 64), tasksRemaining,
	)
}

func StoryPrompt(history []string, level int) string {
	soFar := "The story is just beginning."
	if len(history) > 0 {
		soFar = "Previously in the story: " + strings.Join(history, " ")
	}

	return fmt.Sprintf(`You are writing a mysterious, dark fantasy story for a pixelated knight RPG.
The player has just traveled further into the world.

Rules for the story:
1. Tell it in fragments/pieces (max 40 words).
2. Leave clues about the world's downfall, the knight's true identity, or a forgotten war.
3. Use atmospheric, book-like prose.
4. Make it feel like a piece of lore found in a ruined library.

Current Game Context:
- Knight's Level: %d
- Story so far: %s

Generate the NEXT fragment. Do not repeat what was said before. Move the plot forward slightly or deepen the mystery.`,
		level, soFar)
}
