package server

import (
	"aimtrainer/internal/wshub"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// handleEvents streams the live counters as server-sent events, one event per
// game change, named after the change kind.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	room := s.roomFromPath(w, r)
	if room == nil {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := room.Broadcaster.Subscribe()
	defer room.Broadcaster.Unsubscribe(msgChan)

	if err := writeEvent(w, "state", wshub.NewState(room.Game.Get())); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-msgChan:
			if !ok {
				return
			}
			if err := writeEvent(w, string(ev.Kind), ev); err != nil {
				log.Printf("[SSE] write error: %v\n", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
