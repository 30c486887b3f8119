package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
)

const heartbeatInterval = 30 * time.Second

type Handler struct {
	hub *watch.Hub
}

func NewHandler(hub *watch.Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stream)
}

// stream pushes the user's change feed over server-sent events. An optional
// collection query parameter narrows the feed to one collection.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	collection := watch.Collection(r.URL.Query().Get("collection"))

	events, cancel := h.hub.Subscribe(userID, collection)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			// Comment line keeps proxies from closing an idle stream.
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case ev, open := <-events:
			if !open {
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode event", "error", err)
				continue
			}

			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
