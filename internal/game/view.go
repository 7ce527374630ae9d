// internal/game/view.go
//
// Redacted snapshot of a game as the human is allowed to see it: own hand,
// everyone's location, opponents' hand sizes, pending disproof candidates.
// The solution only appears once the game is over.

package game

// OpponentView is an opponent without its cards.
type OpponentView struct {
	Index     int    `json:"index"`
	Character Card   `json:"character"`
	Room      Card   `json:"room"`
	HandSize  int    `json:"handSize"`
	Policy    string `json:"policy"`
	Active    bool   `json:"active"`
}

// View is the JSON shape returned to clients.
type View struct {
	ID         string           `json:"id"`
	Difficulty Difficulty       `json:"difficulty"`
	Human      Participant      `json:"human"`
	Opponents  []OpponentView   `json:"opponents"`
	Undealt    []Card           `json:"undealt"`
	Turn       Turn             `json:"turn"`
	ValidMoves []Card           `json:"validMoves"`
	Pending    *PendingDisproof `json:"pending,omitempty"`
	Revealed   []Card           `json:"revealed"`
	AutoTrack  bool             `json:"autoTrack"`
	Outcome    *Outcome         `json:"outcome,omitempty"`
	Solution   *Triple          `json:"solution,omitempty"`
	LastSeq    int              `json:"lastSeq"`
}

// View builds the human's snapshot. Undealt cards are public, as on the
// physical table.
func (g *Game) View() View {
	v := View{
		ID:         g.ID,
		Difficulty: g.Difficulty,
		Human:      g.Human,
		Opponents:  make([]OpponentView, len(g.Opponents)),
		Undealt:    append([]Card{}, g.Undealt...),
		Turn:       g.Turn,
		ValidMoves: []Card{},
		Pending:    g.Pending,
		Revealed:   append([]Card{}, g.Revealed...),
		AutoTrack:  g.AutoTrack,
		Outcome:    g.Outcome,
		LastSeq:    len(g.Log),
	}
	v.Human.Hand = append([]Card{}, g.Human.Hand...)
	for i, o := range g.Opponents {
		v.Opponents[i] = OpponentView{
			Index:     i,
			Character: o.Character,
			Room:      o.Room,
			HandSize:  len(o.Hand),
			Policy:    o.Policy.String(),
			Active:    o.Active,
		}
	}
	if g.Turn.Phase == PhaseHumanTurn {
		v.ValidMoves = g.ValidMoves()
	}
	if g.Finished() {
		s := g.Solution
		v.Solution = &s
	}
	return v
}
