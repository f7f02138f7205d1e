package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"landing_page_studio/generator"
	"landing_page_studio/pages"
	"landing_page_studio/publisher"
	"landing_page_studio/studio"
)

type sessionResp struct {
	studio.Snapshot
	Messages []messageView `json:"messages"`
}

type submitReq struct {
	Text string `json:"text"`
}

type submitResp struct {
	sessionResp
	Payload string `json:"payload"`
}

type themeReq struct {
	Theme string `json:"theme"`
}

type viewReq struct {
	View studio.View `json:"view"`
}

type selectReq struct {
	ID string `json:"id"`
}

type studioHandler func(w http.ResponseWriter, r *http.Request, st *studio.Studio)

func (s *Server) withStudio(h studioHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := s.store.get(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, errors.New("session not found"))
			return
		}
		h(w, r, st)
	}
}

func (s *Server) snapshot(st *studio.Studio) sessionResp {
	snap := st.Snapshot()
	return sessionResp{Snapshot: snap, Messages: renderMessages(snap.Messages, s.logger)}
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	id := newSessionID()
	st, err := studio.New(generator.NewSession(id, s.agent), s.pages, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	// a failed list only produces a notice
	_ = st.Refresh(r.Context())
	s.store.set(id, st)
	writeJSON(w, http.StatusCreated, s.snapshot(st))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	writeJSON(w, http.StatusOK, s.snapshot(st))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// the completion outlives a dropped client connection
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), completionTimeout)
	defer cancel()

	turn, err := st.Submit(ctx, req.Text)
	switch {
	case errors.Is(err, generator.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, generator.ErrBusy):
		writeError(w, http.StatusConflict, err)
		return
	}
	// gateway failures are already in the log and the notices
	writeJSON(w, http.StatusOK, submitResp{
		sessionResp: s.snapshot(st),
		Payload:     turn.Extraction.Status.String(),
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	var model generator.ContentModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeEditResult(w, st, st.Edit(r.Context(), model))
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	var req themeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeEditResult(w, st, st.SetTheme(r.Context(), req.Theme))
}

// writeEditResult maps an edit outcome to a response. Save failures are
// reported through the snapshot notices, with the page flagged unsaved.
func (s *Server) writeEditResult(w http.ResponseWriter, st *studio.Studio, err error) {
	switch {
	case errors.Is(err, studio.ErrNoContent):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, studio.ErrInvalidContent):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeJSON(w, http.StatusOK, s.snapshot(st))
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	var req viewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := st.SetView(req.View); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(st))
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	st.New()
	writeJSON(w, http.StatusOK, s.snapshot(st))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := st.Select(r.Context(), req.ID); err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(st))
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	if err := st.Delete(r.Context(), r.PathValue("pageID")); err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(st))
}

func (s *Server) handleSessionExport(w http.ResponseWriter, r *http.Request, st *studio.Studio) {
	content, ok := st.Content()
	if !ok {
		writeError(w, http.StatusConflict, errors.New("no landing page to export"))
		return
	}
	s.writeExport(w, r, content)
}

func (s *Server) handlePageList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.pages.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if recs == nil {
		recs = []pages.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handlePageGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.getRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.pages.Delete(r.Context(), r.PathValue("pageID")); err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePageExport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.getRecord(w, r)
	if !ok {
		return
	}
	s.writeExport(w, r, rec.Content())
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) (pages.Record, bool) {
	rec, err := s.pages.Get(r.Context(), r.PathValue("pageID"))
	if err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
		} else {
			writeError(w, http.StatusBadGateway, err)
		}
		return pages.Record{}, false
	}
	return rec, true
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, content generator.ContentModel) {
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(publisher.FormatHTML)
	}
	format, err := publisher.ParseFormat(formatParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	body, err := publisher.Render(content, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	etag := `"` + publisher.Digest(body) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	contentType := "text/html; charset=utf-8"
	if format == publisher.FormatComponent {
		contentType = "text/javascript; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", publisher.Filename(content, format)))
	}
	_, _ = w.Write([]byte(body))
}
