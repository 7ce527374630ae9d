// internal/game/opponent.go
//
// Scripted opponents.
// Each opponent turn is: move, maybe suggest, maybe accuse, hand over.
//
// Movement personality is fixed by index (i mod 3):
//   - explorer:  an unoccupied neighbour if any, else any neighbour.
//   - connector: the neighbour with the most exits; ties go to the first
//     one in the room's neighbour list.
//   - random:    any neighbour, uniformly.
//
// Suggestions always name the opponent's current room and pick suspect and
// weapon among the cards it does not hold. When the human can answer with
// more than one card the turn stalls in awaiting_disproof until
// ResolveHumanDisproof; the accusation roll is skipped for that turn.

package game

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
)

// TurnReport summarises one opponent turn for the caller.
type TurnReport struct {
	Opponent      int       `json:"opponent"`
	Character     Card      `json:"character"`
	From          Card      `json:"from"`
	To            Card      `json:"to"`
	Suggestion    *Triple   `json:"suggestion,omitempty"`
	Disproof      *Disproof `json:"disproof,omitempty"`
	AwaitingHuman bool      `json:"awaitingHuman"`
	Candidates    []Card    `json:"candidates,omitempty"`
	Accusation    *Triple   `json:"accusation,omitempty"`
	Correct       bool      `json:"correct"`
	Eliminated    bool      `json:"eliminated"`
}

// AdvanceOpponentTurn plays the current opponent's whole turn.
func (g *Game) AdvanceOpponentTurn(rng *rand.Rand) (TurnReport, error) {
	if g.Finished() {
		return TurnReport{}, ErrGameOver
	}
	if g.Turn.Phase != PhaseOpponentTurn {
		return TurnReport{}, fmt.Errorf("%w: %s", ErrNotYourTurn, g.Turn.Phase)
	}

	i := g.Turn.Opponent
	opp := &g.Opponents[i]
	rep := TurnReport{Opponent: i, Character: opp.Character, From: opp.Room}

	opp.Room = g.opponentMove(i, rng)
	rep.To = opp.Room
	g.record(Event{Type: EventMoved, Actor: i, Room: opp.Room})

	if rng.Float64() < g.Rules.SuggestChance {
		t := g.opponentSuggestion(i, rng)
		rep.Suggestion = &t
		g.record(Event{Type: EventSuggested, Actor: i, Room: t.Room, Triple: &t})

		held := matches(g.Human.Hand, t)
		switch {
		case len(held) > 1:
			g.Pending = &PendingDisproof{Suggester: i, Suggestion: t, Candidates: held}
			g.Turn.Phase = PhaseAwaitingDisproof
			g.record(Event{Type: EventDisproofRequested, Actor: i, Target: intPtr(HumanIndex), Triple: &t, Candidates: held})
			rep.AwaitingHuman = true
			rep.Candidates = held
			return rep, nil
		case len(held) == 1:
			g.reveal(held[0])
			g.record(Event{Type: EventDisproved, Actor: HumanIndex, Target: intPtr(i), Card: held[0]})
			rep.Disproof = &Disproof{Disproven: true, Card: held[0], By: HumanIndex, Character: g.Human.Character}
		default:
			d := g.disproveByOpponents(t, i)
			rep.Disproof = &d
		}
	}

	if rng.Float64() < g.Rules.AccuseChance {
		t := g.opponentAccusation(i, rng)
		rep.Accusation = &t
		rep.Correct = t == g.Solution
		g.record(Event{Type: EventAccused, Actor: i, Triple: &t, Correct: boolPtr(rep.Correct)})
		if rep.Correct {
			g.finish(Outcome{HumanWon: false, Winner: i, Accuser: i, Accusation: t})
			return rep, nil
		}
		opp.Active = false
		rep.Eliminated = true
		g.record(Event{Type: EventEliminated, Actor: i})
	}

	g.endOpponentTurn(i)
	return rep, nil
}

// opponentMove picks opponent i's next room by its policy.
func (g *Game) opponentMove(i int, rng *rand.Rand) Card {
	opp := g.Opponents[i]
	options := ValidMoves(opp.Room)
	if len(options) == 0 {
		return opp.Room
	}

	switch opp.Policy {
	case PolicyExplorer:
		occupied := g.occupiedRooms()
		free := lo.Filter(options, func(r Card, _ int) bool { return !occupied[r] })
		if len(free) > 0 {
			return pick(rng, free)
		}
		return pick(rng, options)
	case PolicyConnector:
		best := options[0]
		for _, r := range options[1:] {
			if Degree(r) > Degree(best) {
				best = r
			}
		}
		return best
	default:
		return pick(rng, options)
	}
}

// occupiedRooms is every room someone stands in, the human included.
func (g *Game) occupiedRooms() map[Card]bool {
	out := map[Card]bool{g.Human.Room: true}
	for _, o := range g.Opponents {
		out[o.Room] = true
	}
	return out
}

// opponentSuggestion names the current room plus an unheld suspect and weapon.
func (g *Game) opponentSuggestion(i int, rng *rand.Rand) Triple {
	opp := g.Opponents[i]
	return Triple{
		Suspect: pick(rng, unheld(Suspects, opp.Hand)),
		Weapon:  pick(rng, unheld(Weapons, opp.Hand)),
		Room:    opp.Room,
	}
}

// opponentAccusation guesses uniformly among the cards the opponent does not hold.
func (g *Game) opponentAccusation(i int, rng *rand.Rand) Triple {
	hand := g.Opponents[i].Hand
	return Triple{
		Suspect: pick(rng, unheld(Suspects, hand)),
		Weapon:  pick(rng, unheld(Weapons, hand)),
		Room:    pick(rng, unheld(Rooms, hand)),
	}
}

// unheld is category minus hand, or the whole category if hand covers it.
func unheld(category, hand []Card) []Card {
	rest := lo.Without(category, hand...)
	if len(rest) == 0 {
		return category
	}
	return rest
}

func pick(rng *rand.Rand, from []Card) Card {
	return from[rng.Intn(len(from))]
}
