package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/render/html"
	"github.com/matzehuels/netgraph/pkg/render/svg"
	"github.com/matzehuels/netgraph/pkg/view"
)

// CreateRequest is the optional body of POST /views.
type CreateRequest struct {
	Nodes string `json:"nodes,omitempty"`
	Edges string `json:"edges,omitempty"`
}

// CreateResponse is returned by POST /views.
type CreateResponse struct {
	ID    string     `json:"id"`
	State view.State `json:"state"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var opts []html.Option
	if s.opts.Title != "" {
		opts = append(opts, html.WithTitle(s.opts.Title))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html.Live(opts...))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"views":    s.Len(),
		"counters": s.opts.Counters.Snapshot(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		respondWithError(w, neterrors.Wrap(neterrors.ErrCodeInvalidInput, err, "read request"))
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(w, neterrors.Wrap(neterrors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
	}

	if err := s.checkSources(req); err != nil {
		respondWithError(w, err)
		return
	}
	v := s.Open(req.Nodes, req.Edges)
	writeJSON(w, http.StatusCreated, CreateResponse{ID: v.ID(), State: v.State()})
}

// checkSources rejects request-supplied resources other than the configured
// ones unless the server allows them.
func (s *Server) checkSources(req CreateRequest) error {
	if s.opts.AllowSources {
		return nil
	}
	if (req.Nodes != "" && req.Nodes != s.opts.Nodes) || (req.Edges != "" && req.Edges != s.opts.Edges) {
		return neterrors.New(neterrors.ErrCodeForbidden, "this server only serves its configured resources")
	}
	return nil
}

// loadedView resolves {id} and waits for its load to finish.
func (s *Server) loadedView(w http.ResponseWriter, r *http.Request) (*view.View, bool) {
	id := chi.URLParam(r, "id")
	v, ok := s.Lookup(id)
	if !ok {
		respondWithError(w, neterrors.New(neterrors.ErrCodeNotFound, "view %s not found", id))
		return nil, false
	}
	if err := v.Wait(r.Context()); err != nil {
		if neterrors.GetCode(err) == "" {
			err = neterrors.Wrap(neterrors.ErrCodeInternal, err, "wait for view %s", id)
		}
		respondWithError(w, err)
		return nil, false
	}
	return v, true
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadedView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg.Render(v.Scene(), svg.WithIDs()))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadedView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := graph.WriteLayout(graph.FromScene(v.Scene()), w); err != nil {
		s.logger.Warn("write layout", "view", v.ID(), "err", err)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok := s.Lookup(id)
	if !ok {
		respondWithError(w, neterrors.New(neterrors.ErrCodeNotFound, "view %s not found", id))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, neterrors.New(neterrors.ErrCodeUnsupported, "streaming not supported"))
		return
	}

	frames, cancel := v.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var last string
	for {
		select {
		case <-r.Context().Done():
			return
		case scene, ok := <-frames:
			if !ok {
				return
			}
			if st := stateLine(scene); st != last {
				writeEvent(w, "state", st)
				last = st
			}
			writeEvent(w, "", string(svg.Render(scene, svg.WithIDs())))
			flusher.Flush()
		}
	}
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok := s.Lookup(id)
	if !ok {
		respondWithError(w, neterrors.New(neterrors.ErrCodeNotFound, "view %s not found", id))
		return
	}
	var ev view.PointerEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<12)).Decode(&ev); err != nil {
		respondWithError(w, neterrors.Wrap(neterrors.ErrCodeInvalidInput, err, "decode pointer event"))
		return
	}
	if err := v.Pointer(ev); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Remove(id) {
		respondWithError(w, neterrors.New(neterrors.ErrCodeNotFound, "view %s not found", id))
		return
	}
	s.logger.Debug("View deleted", "view", id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func stateLine(s view.Scene) string {
	if s.LoadError != "" {
		return fmt.Sprintf("%s: %s", s.State, s.LoadError)
	}
	return string(s.State)
}

// writeEvent writes one server-sent event. Multi-line data is split across
// data fields, which the client joins with newlines.
func writeEvent(w io.Writer, event, data string) {
	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	_, _ = io.WriteString(w, b.String())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondWithError maps an error code to an HTTP status.
func respondWithError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch neterrors.GetCode(err) {
	case neterrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case neterrors.ErrCodeInvalidInput, neterrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case neterrors.ErrCodeForbidden:
		status = http.StatusForbidden
	case neterrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	writeJSON(w, status, map[string]any{
		"error":   true,
		"code":    neterrors.GetCode(err),
		"message": neterrors.UserMessage(err),
	})
}
