package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rookgm/cargolabel/internal/events"
)

const keepAliveInterval = 15 * time.Second

type EventSubscriber interface {
	Subscribe(operatorID uint64) (<-chan events.Event, func())
}

// EventsHandler streams batch events as server-sent events
type EventsHandler struct {
	sub EventSubscriber
}

// NewEventsHandler creates new EventsHandler instance
func NewEventsHandler(sub EventSubscriber) *EventsHandler {
	return &EventsHandler{sub: sub}
}

// Stream writes balance_changed and label_progress events until the client goes away
func (eh *EventsHandler) Stream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		ch, release := eh.sub.Subscribe(payload.OperatorID)
		defer release()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-keepAlive.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case ev, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
				flusher.Flush()
			}
		}
	}
}
