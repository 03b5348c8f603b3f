package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/masnyjimmy/wsparam/compilation"
)

// CatalogEvent tells event stream clients which catalog is being served.
// Revision starts at 1 and grows with every SetCatalog.
type CatalogEvent struct {
	Revision   uint64   `json:"revision"`
	Service    string   `json:"service"`
	Namespace  string   `json:"namespace"`
	Types      []string `json:"types"`
	Operations []string `json:"operations"`
}

func newCatalogEvent(catalog *compilation.Catalog, revision uint64) CatalogEvent {
	out := CatalogEvent{
		Revision:   revision,
		Service:    catalog.Service,
		Namespace:  catalog.Namespace,
		Types:      make([]string, 0),
		Operations: make([]string, 0),
	}

	for _, t := range catalog.Types() {
		out.Types = append(out.Types, t.Name())
	}
	for _, op := range catalog.Operations() {
		out.Operations = append(out.Operations, op.Name)
	}

	return out
}

// eventHub fans catalog events out to server-sent event clients. A client
// that falls behind only keeps the newest event.
type eventHub struct {
	m       sync.Mutex
	current CatalogEvent
	clients map[chan CatalogEvent]struct{}
}

func newEventHub(catalog *compilation.Catalog) *eventHub {
	return &eventHub{
		current: newCatalogEvent(catalog, 1),
		clients: make(map[chan CatalogEvent]struct{}),
	}
}

// subscribe registers a client and returns the event it starts from.
func (h *eventHub) subscribe() (chan CatalogEvent, CatalogEvent) {
	ch := make(chan CatalogEvent, 1)

	h.m.Lock()
	defer h.m.Unlock()

	h.clients[ch] = struct{}{}
	return ch, h.current
}

func (h *eventHub) unsubscribe(ch chan CatalogEvent) {
	h.m.Lock()
	delete(h.clients, ch)
	h.m.Unlock()
}

func (h *eventHub) clientCount() int {
	h.m.Lock()
	defer h.m.Unlock()
	return len(h.clients)
}

// publish makes catalog the current revision and sends it to every client.
func (h *eventHub) publish(catalog *compilation.Catalog) CatalogEvent {
	h.m.Lock()
	defer h.m.Unlock()

	h.current = newCatalogEvent(catalog, h.current.Revision+1)

	for ch := range h.clients {
		select {
		case <-ch:
		default:
		}
		ch <- h.current
	}

	return h.current
}

func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, current := h.subscribe()
	defer h.unsubscribe(ch)

	if err := writeEvent(w, current); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-ch:
			if err := writeEvent(w, event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event CatalogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "id: %d\nevent: catalog\ndata: %s\n\n", event.Revision, data)
	return err
}

var _ http.Handler = (*eventHub)(nil)
