// internal/game/events.go
//
// Structured game log. The engine never formats strings for display; it
// appends Events and lets the presentation layer (HTTP client, terminal,
// websocket feed) decide how to render them.

package game

// EventType names what happened.
type EventType string

const (
	EventGameStarted       EventType = "game_started"
	EventMoved             EventType = "moved"
	EventSuggested         EventType = "suggested"
	EventDisproved         EventType = "disproved"
	EventNotDisproved      EventType = "not_disproved"
	EventDisproofRequested EventType = "disproof_requested"
	EventAccused           EventType = "accused"
	EventEliminated        EventType = "eliminated"
	EventTurnStarted       EventType = "turn_started"
	EventTurnEnded         EventType = "turn_ended"
	EventGameOver          EventType = "game_over"
)

// Event is a single log entry. Actor and Target are participant indexes
// (HumanIndex for the human); fields irrelevant to Type are zero.
type Event struct {
	Seq        int       `json:"seq"`
	Type       EventType `json:"type"`
	Actor      int       `json:"actor"`
	Target     *int      `json:"target,omitempty"`
	Room       Card      `json:"room,omitempty"`
	Triple     *Triple   `json:"triple,omitempty"`
	Card       Card      `json:"card,omitempty"`
	Candidates []Card    `json:"candidates,omitempty"`
	Correct    *bool     `json:"correct,omitempty"`
}

func (g *Game) record(e Event) Event {
	e.Seq = len(g.Log) + 1
	g.Log = append(g.Log, e)
	return e
}

// Events returns the log entries with Seq > since.
func (g *Game) Events(since int) []Event {
	if since < 0 {
		since = 0
	}
	if since >= len(g.Log) {
		return []Event{}
	}
	out := make([]Event, len(g.Log)-since)
	copy(out, g.Log[since:])
	return out
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }
