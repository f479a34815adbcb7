package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	mosaicio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/render/outline"
	"github.com/matzehuels/mosaic/pkg/store"
)

// maxBody caps request bodies.
const maxBody = 4 << 20

// documentInfo is a stored document in list responses.
type documentInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Open      bool      `json:"open"`
}

type createResponse struct {
	ID       string          `json:"id"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type eventResponse struct {
	Moved    bool            `json:"moved"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type batchResponse struct {
	Applied  int             `json:"applied"`
	Rejected int             `json:"rejected"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type saveResponse struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// handleCreate stores a new document and opens it. An empty body creates
// the default document.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = mosaicio.DefaultJSON()
	}

	tree, err := mosaicio.Unmarshal(data, mosaicio.Options{Decoder: s.decoder})
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := s.newEngine(tree)
	if err != nil {
		writeError(w, err)
		return
	}
	normalized, err := mosaicio.Marshal(e.Tree())
	if err != nil {
		writeError(w, err)
		return
	}

	rec := &store.Record{ID: store.NewID(), Name: r.URL.Query().Get("name"), Data: normalized}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	s.sessions[rec.ID] = &session{name: rec.Name, engine: e}
	s.mu.Unlock()

	s.logger.Debug("created document", "id", rec.ID, "rows", e.Stats().Rows, "sessions", s.openSessions())
	writeJSON(w, http.StatusCreated, createResponse{ID: rec.ID, Snapshot: e.Snapshot()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	out := make([]documentInfo, len(recs))
	for i, rec := range recs {
		_, open := s.sessions[rec.ID]
		out[i] = documentInfo{ID: rec.ID, Name: rec.Name, UpdatedAt: rec.UpdatedAt, Open: open}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

// handleDelete removes the stored document and closes its session.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateDocumentID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// handleEvent applies a single event whose operation is fixed by the route.
func (s *Server) handleEvent(op engine.Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev engine.Event
		if err := decodeJSON(r, &ev); err != nil {
			writeError(w, err)
			return
		}
		ev.Op = op

		sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}

		sess.mu.Lock()
		moved, err := sess.engine.Apply(ev)
		snap := sess.engine.Snapshot()
		sess.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eventResponse{Moved: moved, Snapshot: snap})
	}
}

// handleEvents applies a batch in order, stopping at the first failure.
// Events applied before the failure stay applied.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var events []engine.Event
	if err := decodeJSON(r, &events); err != nil {
		writeError(w, err)
		return
	}

	sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var res batchResponse
	for i, ev := range events {
		changed, err := sess.engine.Apply(ev)
		if err != nil {
			writeError(w, errs.Wrap(codeOf(err), err, "event %d (%s): %s", i, ev.Op, errs.UserMessage(err)))
			return
		}
		if changed {
			res.Applied++
		} else {
			res.Rejected++
		}
	}
	res.Snapshot = sess.engine.Snapshot()
	writeJSON(w, http.StatusOK, res)
}

// handleSave writes the session's current tree back to the store.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.session(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	data, err := mosaicio.Marshal(sess.engine.Tree())
	name := sess.name
	sess.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	rec := &store.Record{ID: id, Name: name, Data: data}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{ID: rec.ID, UpdatedAt: rec.UpdatedAt})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	data, err := mosaicio.Marshal(sess.engine.Tree())
	sess.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleOutline renders the structural diagram. ?detailed=true adds tile
// excerpts.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()

	dot := outline.ToDOT(snap, outline.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	svg, err := outline.RenderSVG(dot)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render outline"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// session returns the open session for id, loading it from the store on
// first use.
func (s *Server) session(ctx context.Context, id string) (*session, error) {
	if err := errs.ValidateDocumentID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, err := mosaicio.Unmarshal(rec.Data, mosaicio.Options{Decoder: s.decoder})
	if err != nil {
		return nil, err
	}
	e, err := s.newEngine(tree)
	if err != nil {
		return nil, err
	}

	sess := &session{name: rec.Name, engine: e}
	s.sessions[id] = sess
	s.logger.Debug("opened document", "id", id)
	return sess, nil
}

func (s *Server) newEngine(tree *layout.Tree) (*engine.Engine, error) {
	return engine.New(tree, engine.WithLogger(s.logger), engine.WithDecoder(s.decoder))
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	return data, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}
