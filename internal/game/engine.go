// internal/game/engine.go
//
// Core game engine for a single Clue session.
// Responsibilities:
//   - Create new games: envelope, shuffled deal, character assignment.
//   - Apply the human's commands: move, end turn, suggest, accuse,
//     and the card choice that resumes a stalled opponent suggestion.
//   - Keep the turn machine coherent: human_turn → opponent_turn(i) …
//     → human_turn, with awaiting_disproof and game_over on the side.
//
// Notes:
//   - All randomness comes from the *rand.Rand the caller passes in, so a
//     fixed seed replays the same game.
//   - Commands validate everything before mutating; a rejected command
//     leaves the game exactly as it was.
//   - Opponent turns live in opponent.go.
package game

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Rules are the tunable probabilities of the scripted opponents.
type Rules struct {
	SuggestChance float64 `json:"suggestChance"` // per opponent turn
	AccuseChance  float64 `json:"accuseChance"`  // per opponent turn, independent
}

// ClassicRules returns the standard opponent behaviour.
func ClassicRules() Rules {
	return Rules{SuggestChance: 0.5, AccuseChance: 0.1}
}

// Options configure New.
type Options struct {
	Opponents  int        // 1..5
	Difficulty Difficulty // defaults to Medium
	Rules      *Rules     // defaults to ClassicRules
}

// New deals a fresh game.
//
// The solution takes one uniformly random card per category. The other 18
// cards are shuffled and dealt floor(18/(n+1)) each, human first; whatever
// is left lands in Undealt. Characters come from a shuffled suspect list,
// human first, so every participant has a distinct identity.
func New(opts Options, rng *rand.Rand) (*Game, error) {
	if opts.Difficulty == "" {
		opts.Difficulty = DifficultyMedium
	}
	switch opts.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, opts.Difficulty)
	}
	if opts.Opponents < 1 || opts.Opponents+1 > len(Suspects) {
		return nil, fmt.Errorf("%w: %d opponents (need 1–%d)", ErrInvalidConfiguration, opts.Opponents, len(Suspects)-1)
	}
	rules := ClassicRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}

	characters := slices.Clone(Suspects)
	rng.Shuffle(len(characters), func(i, j int) { characters[i], characters[j] = characters[j], characters[i] })

	solution := Triple{
		Suspect: Suspects[rng.Intn(len(Suspects))],
		Weapon:  Weapons[rng.Intn(len(Weapons))],
		Room:    Rooms[rng.Intn(len(Rooms))],
	}
	deck := lo.Without(FullDeck(), solution.Cards()...)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	players := opts.Opponents + 1
	perHand := len(deck) / players

	g := &Game{
		ID:         uuid.NewString(),
		Difficulty: opts.Difficulty,
		Rules:      rules,
		Solution:   solution,
		Human: Participant{
			Character: characters[0],
			Room:      StartingRoom,
			Hand:      sortCards(deck[:perHand]),
		},
		Opponents: make([]Opponent, opts.Opponents),
		Undealt:   slices.Clone(deck[players*perHand:]),
		AutoTrack: true,
		Revealed:  []Card{},
		Log:       []Event{},
	}
	for i := range g.Opponents {
		start := (i + 1) * perHand
		g.Opponents[i] = Opponent{
			Participant: Participant{
				Character: characters[i+1],
				Room:      StartingRoom,
				Hand:      sortCards(deck[start : start+perHand]),
			},
			Policy: Policy(i % 3),
			Active: true,
		}
	}

	g.record(Event{Type: EventGameStarted, Actor: HumanIndex, Room: StartingRoom})
	g.startHumanTurn()
	return g, nil
}

// ValidMoves returns the rooms the human can move to.
func (g *Game) ValidMoves() []Card {
	return ValidMoves(g.Human.Room)
}

// Move walks the human to an adjacent room and ends their turn.
func (g *Game) Move(room Card) error {
	if g.Finished() {
		return ErrGameOver
	}
	if !room.Is(CategoryRoom) {
		return fmt.Errorf("%w: %w: %q is not a room", ErrInvalidMove, ErrInvalidInput, room)
	}
	if g.Turn.Phase != PhaseHumanTurn {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, g.Turn.Phase)
	}
	if !Adjacent(g.Human.Room, room) {
		return fmt.Errorf("%w: the %s does not connect to the %s", ErrInvalidMove, g.Human.Room, room)
	}
	g.Human.Room = room
	g.record(Event{Type: EventMoved, Actor: HumanIndex, Room: room})
	g.endHumanTurn()
	return nil
}

// EndTurn passes without moving.
func (g *Game) EndTurn() error {
	if g.Finished() {
		return ErrGameOver
	}
	if g.Turn.Phase != PhaseHumanTurn {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, g.Turn.Phase)
	}
	g.endHumanTurn()
	return nil
}

// Disproof is the answer to a suggestion. By is the participant who showed
// Card, or NoParticipant when nobody could.
type Disproof struct {
	Disproven bool `json:"disproven"`
	Card      Card `json:"card,omitempty"`
	By        int  `json:"by"`
	Character Card `json:"character,omitempty"`
}

// Suggest makes the human's suggestion for this turn.
//
// The room must be the one the human stands in, and only one suggestion is
// allowed per turn. Opponents are asked in index order; the first one holding
// any of the three cards shows one (suspect before weapon before room) and
// the card is returned to the human. The suggestion ends the human's turn.
func (g *Game) Suggest(t Triple) (Disproof, error) {
	if g.Finished() {
		return Disproof{}, ErrGameOver
	}
	if err := t.validate(); err != nil {
		return Disproof{}, fmt.Errorf("%w: %w", ErrInvalidSuggestion, err)
	}
	if g.Turn.Suggested {
		return Disproof{}, fmt.Errorf("%w: already suggested this turn", ErrInvalidSuggestion)
	}
	if g.Turn.Phase != PhaseHumanTurn {
		return Disproof{}, fmt.Errorf("%w: %s", ErrNotYourTurn, g.Turn.Phase)
	}
	if t.Room != g.Human.Room {
		return Disproof{}, fmt.Errorf("%w: you are in the %s, not the %s", ErrInvalidSuggestion, g.Human.Room, t.Room)
	}

	g.Turn.Suggested = true
	g.record(Event{Type: EventSuggested, Actor: HumanIndex, Room: t.Room, Triple: &t})
	d := g.disproveByOpponents(t, HumanIndex)
	g.endHumanTurn()
	return d, nil
}

// Accusation is the verdict on an accusation.
type Accusation struct {
	Correct  bool   `json:"correct"`
	Solution Triple `json:"solution"`
}

// Accuse makes the human's final guess. Right or wrong, the game ends.
func (g *Game) Accuse(t Triple) (Accusation, error) {
	if g.Finished() {
		return Accusation{}, ErrGameOver
	}
	if err := t.validate(); err != nil {
		return Accusation{}, fmt.Errorf("%w: %w", ErrInvalidAccusationFormat, err)
	}
	if g.Turn.Phase != PhaseHumanTurn {
		return Accusation{}, fmt.Errorf("%w: %s", ErrNotYourTurn, g.Turn.Phase)
	}

	correct := t == g.Solution
	g.record(Event{Type: EventAccused, Actor: HumanIndex, Triple: &t, Correct: boolPtr(correct)})
	winner := NoParticipant
	if correct {
		winner = HumanIndex
	}
	g.finish(Outcome{HumanWon: correct, Winner: winner, Accuser: HumanIndex, Accusation: t})
	return Accusation{Correct: correct, Solution: g.Solution}, nil
}

// ResolveHumanDisproof shows card to the opponent whose suggestion is
// pending and lets the opponent turns continue.
func (g *Game) ResolveHumanDisproof(card Card) error {
	if g.Finished() {
		return ErrGameOver
	}
	if g.Turn.Phase != PhaseAwaitingDisproof || g.Pending == nil {
		return ErrNoPendingDisproof
	}
	if !card.Valid() {
		return fmt.Errorf("%w: %w: unknown card %q", ErrInvalidDisproofCard, ErrInvalidInput, card)
	}
	if !lo.Contains(g.Pending.Candidates, card) {
		return fmt.Errorf("%w: choose one of %v", ErrInvalidDisproofCard, g.Pending.Candidates)
	}

	suggester := g.Pending.Suggester
	g.Pending = nil
	g.reveal(card)
	g.record(Event{Type: EventDisproved, Actor: HumanIndex, Target: intPtr(suggester), Card: card})
	g.endOpponentTurn(suggester)
	return nil
}

// ------------------------------ turn plumbing ------------------------------

// startHumanTurn opens a new human turn and clears the suggestion flag.
func (g *Game) startHumanTurn() {
	g.Turn = Turn{Phase: PhaseHumanTurn, Opponent: 0, Round: g.Turn.Round + 1}
	g.record(Event{Type: EventTurnStarted, Actor: HumanIndex})
}

// endHumanTurn hands over to the first active opponent. The suggestion
// flag survives until the human's next turn starts.
func (g *Game) endHumanTurn() {
	g.record(Event{Type: EventTurnEnded, Actor: HumanIndex})
	g.passTo(HumanIndex)
}

// endOpponentTurn hands over from opponent i to the next active opponent,
// or back to the human.
func (g *Game) endOpponentTurn(i int) {
	g.record(Event{Type: EventTurnEnded, Actor: i})
	g.passTo(i)
}

func (g *Game) passTo(after int) {
	for j := after + 1; j < len(g.Opponents); j++ {
		if g.Opponents[j].Active {
			g.Turn.Phase = PhaseOpponentTurn
			g.Turn.Opponent = j
			g.record(Event{Type: EventTurnStarted, Actor: j})
			return
		}
	}
	g.startHumanTurn()
}

func (g *Game) finish(o Outcome) {
	g.Outcome = &o
	g.Pending = nil
	g.Turn.Phase = PhaseGameOver
	g.record(Event{Type: EventGameOver, Actor: o.Winner, Triple: &g.Solution, Correct: boolPtr(o.HumanWon)})
}

// disproveByOpponents asks every opponent except suggester, in index order.
func (g *Game) disproveByOpponents(t Triple, suggester int) Disproof {
	for i, opp := range g.Opponents {
		if i == suggester {
			continue
		}
		if card, ok := firstMatch(opp.Hand, t); ok {
			g.reveal(card)
			g.record(Event{Type: EventDisproved, Actor: i, Target: intPtr(suggester), Card: card})
			return Disproof{Disproven: true, Card: card, By: i, Character: opp.Character}
		}
	}
	g.record(Event{Type: EventNotDisproved, Actor: suggester, Triple: &t})
	return Disproof{By: NoParticipant}
}

// reveal adds card to the revealed record once.
func (g *Game) reveal(card Card) {
	if !lo.Contains(g.Revealed, card) {
		g.Revealed = append(g.Revealed, card)
	}
}

// firstMatch returns the first of suspect, weapon, room held in hand.
func firstMatch(hand []Card, t Triple) (Card, bool) {
	for _, c := range t.Cards() {
		if lo.Contains(hand, c) {
			return c, true
		}
	}
	return "", false
}

// matches returns every card of t held in hand, in priority order.
func matches(hand []Card, t Triple) []Card {
	return lo.Filter(t.Cards(), func(c Card, _ int) bool { return lo.Contains(hand, c) })
}

// sortCards copies cards into canonical deck order.
func sortCards(cards []Card) []Card {
	index := make(map[Card]int, len(categoryOf))
	for i, c := range FullDeck() {
		index[c] = i
	}
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b Card) int { return index[a] - index[b] })
	return out
}
