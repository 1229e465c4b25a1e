// internal/game/types.go
//
// Core type definitions for the memory game.
// Defines:
//   - Game: the full mutable record (score, budgets, dictionary).
//   - Info: the read-only projection returned by GetGameInfo.

package game

const (
	// MaxMistakes is the mistake budget a fresh game starts with.
	MaxMistakes = 3
	// MaxClues is the clue budget a fresh game starts with.
	MaxClues = 3
)

// Game holds the state of a single memory game.
// The JSON field names are the persisted record format.
type Game struct {
	Score             int      `json:"score"`             // Successful mutations so far.
	MistakesRemaining int      `json:"mistakesRemaining"` // 0 means the game is inactive.
	CluesRemaining    int      `json:"cluesRemaining"`    // Paid dictionary views left.
	Dictionary        []string `json:"dictionary"`        // Insertion ordered, no duplicates.
}

// Info is the game summary without the dictionary.
type Info struct {
	Score             int `json:"score"`
	MistakesRemaining int `json:"mistakesRemaining"`
	CluesRemaining    int `json:"cluesRemaining"`
}
