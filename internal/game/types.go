// internal/game/types.go
//
// Core type definitions for the Clue engine.
// Defines:
//   - Participant / Opponent: identity, location and hand.
//   - Phase / Turn: the turn state machine.
//   - PendingDisproof: the stalled state while the human picks a card to show.
//   - Outcome: the terminal result.
//   - Game: the single mutable record every command operates on.

package game

// HumanIndex identifies the human in events and outcomes; opponents use 0..n-1.
const (
	HumanIndex    = -1
	NoParticipant = -2
)

// Difficulty is recorded with the game. Opponent heuristics are fixed and do
// not depend on it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Policy is an opponent's movement personality, chosen by index mod 3.
type Policy int

const (
	PolicyExplorer  Policy = iota // prefer an unoccupied neighbour
	PolicyConnector               // prefer the best-connected neighbour
	PolicyRandom                  // uniform choice
)

func (p Policy) String() string {
	switch p {
	case PolicyExplorer:
		return "explorer"
	case PolicyConnector:
		return "connector"
	case PolicyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Participant is anyone holding cards and standing in a room.
type Participant struct {
	Character Card   `json:"character"`
	Room      Card   `json:"room"`
	Hand      []Card `json:"hand"`
}

// Opponent is a scripted participant. Eliminated opponents (Active == false)
// take no more turns but keep their hand and still disprove suggestions.
type Opponent struct {
	Participant
	Policy Policy `json:"policy"`
	Active bool   `json:"active"`
}

// Phase is the state of the turn machine.
type Phase string

const (
	PhaseHumanTurn        Phase = "human_turn"
	PhaseOpponentTurn     Phase = "opponent_turn"
	PhaseAwaitingDisproof Phase = "awaiting_disproof"
	PhaseGameOver         Phase = "game_over"
)

// Turn tracks whose move it is.
type Turn struct {
	Phase     Phase `json:"phase"`
	Opponent  int   `json:"opponent"`  // meaningful in opponent_turn / awaiting_disproof
	Suggested bool  `json:"suggested"` // human suggested since their turn began
	Round     int   `json:"round"`     // human turns started, 1-based
}

// PendingDisproof is the suggestion an opponent made that the human can
// disprove with more than one card.
type PendingDisproof struct {
	Suggester  int    `json:"suggester"`
	Suggestion Triple `json:"suggestion"`
	Candidates []Card `json:"candidates"`
}

// Outcome describes how the game ended.
type Outcome struct {
	HumanWon   bool   `json:"humanWon"`
	Winner     int    `json:"winner"` // HumanIndex, an opponent index, or NoParticipant
	Accuser    int    `json:"accuser"`
	Accusation Triple `json:"accusation"`
}

// Game holds the state of a single Clue session.
type Game struct {
	ID         string           // Unique game identifier.
	Difficulty Difficulty       // As requested at creation.
	Rules      Rules            // Opponent probabilities.
	Solution   Triple           // The envelope.
	Human      Participant      // The player.
	Opponents  []Opponent       // Scripted opponents, index = turn order.
	Undealt    []Card           // Neither in a hand nor the solution.
	Turn       Turn             // Turn state machine.
	Pending    *PendingDisproof // Set only in PhaseAwaitingDisproof.
	Revealed   []Card           // Cards shown in disproofs, insertion ordered, no duplicates.
	AutoTrack  bool             // Notebook marks revealed cards while true.
	Outcome    *Outcome         // Set only in PhaseGameOver.
	Log        []Event          // Structured game log.
}

// Finished reports whether the game reached its terminal state.
func (g *Game) Finished() bool { return g.Turn.Phase == PhaseGameOver }

// Name returns the character name of participant idx.
func (g *Game) Name(idx int) Card {
	if idx == HumanIndex {
		return g.Human.Character
	}
	if idx >= 0 && idx < len(g.Opponents) {
		return g.Opponents[idx].Character
	}
	return ""
}
