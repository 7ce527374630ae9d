package feed

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/robalobadob/clue/internal/game"
)

const writeWait = 10 * time.Second

// Upgrader returns a websocket upgrader that accepts same-host requests and
// requests from origin.
func Upgrader(origin string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin || o == "http://"+r.Host || o == "https://"+r.Host
		},
	}
}

// Stream serves one websocket client: the backlog first, then live events
// for gameID until either side closes. Client messages are ignored.
// backlog is called after subscribing, so no event falls in between.
func (h *Hub) Stream(conn *websocket.Conn, gameID string, backlog func() []game.Event, log zerolog.Logger) {
	defer conn.Close()

	events, cancel := h.Subscribe(gameID)
	defer cancel()

	last := 0
	if backlog := backlog(); len(backlog) > 0 {
		last = backlog[len(backlog)-1].Seq
		if err := write(conn, Message{Type: "events", Events: backlog}); err != nil {
			return
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
					time.Now().Add(writeWait))
				return
			}
			msg.Events = after(msg.Events, last)
			if len(msg.Events) == 0 {
				continue
			}
			last = msg.Events[len(msg.Events)-1].Seq
			if err := write(conn, msg); err != nil {
				log.Debug().Err(err).Str("gameId", gameID).Msg("feed write")
				return
			}
		}
	}
}

func write(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// after drops events already sent in the backlog.
func after(events []game.Event, seq int) []game.Event {
	for i, e := range events {
		if e.Seq > seq {
			return events[i:]
		}
	}
	return nil
}
