package game

// CardStatus is what the human knows about a card.
type CardStatus string

const (
	StatusInHand   CardStatus = "in_hand"
	StatusRevealed CardStatus = "revealed"
	StatusUnknown  CardStatus = "unknown"
)

// NotebookEntry is one line of the detective's checklist.
type NotebookEntry struct {
	Card     Card       `json:"card"`
	Category Category   `json:"category"`
	Status   CardStatus `json:"status"`
}

// Notebook lists every card in deck order with the human's knowledge of it.
// Revealed cards only show as such while AutoTrack is on; the underlying
// record keeps growing either way.
func (g *Game) Notebook() []NotebookEntry {
	inHand := make(map[Card]bool, len(g.Human.Hand))
	for _, c := range g.Human.Hand {
		inHand[c] = true
	}
	revealed := make(map[Card]bool, len(g.Revealed))
	if g.AutoTrack {
		for _, c := range g.Revealed {
			revealed[c] = true
		}
	}

	deck := FullDeck()
	out := make([]NotebookEntry, 0, len(deck))
	for _, c := range deck {
		cat, _ := c.Category()
		status := StatusUnknown
		switch {
		case inHand[c]:
			status = StatusInHand
		case revealed[c]:
			status = StatusRevealed
		}
		out = append(out, NotebookEntry{Card: c, Category: cat, Status: status})
	}
	return out
}

// SetAutoTrack toggles notebook tracking of revealed cards.
func (g *Game) SetAutoTrack(on bool) {
	g.AutoTrack = on
}
