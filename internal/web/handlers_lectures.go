package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lectern/internal/domain"
	"lectern/internal/i18n"
	"lectern/internal/shared/middleware"
)

type lecturesPageData struct {
	Title    string
	Nav      NavData
	Lectures []*domain.Lecture
}

type lecturePageData struct {
	Title   string
	Nav     NavData
	Lecture *domain.Lecture
}

func (s *Server) handleLectures(w http.ResponseWriter, r *http.Request) {
	loc := i18n.Resolve(r)
	nav := BuildNav(r.URL.Path, userPtr(r), loc)

	lecs, err := s.store.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := lecturesPageData{Title: loc.T("lectures.title"), Nav: nav, Lectures: lecs}
	if err := s.pages.render(w, "lectures.html", data); err != nil {
		s.logger.Error("render lectures", "error", err)
	}
}

func (s *Server) handleLectureDetail(w http.ResponseWriter, r *http.Request) {
	loc := i18n.Resolve(r)
	nav := BuildNav(r.URL.Path, userPtr(r), loc)

	lec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := lecturePageData{Title: lec.Title, Nav: nav, Lecture: lec}
	if err := s.pages.render(w, "lecture_detail.html", data); err != nil {
		s.logger.Error("render lecture detail", "error", err)
	}
}

// handleLectureStatus is the HTMX partial the detail page polls every
// two seconds while the lecture is still processing. Once the status
// leaves processing the returned markup carries no polling trigger,
// so the browser stops on its own.
func (s *Server) handleLectureStatus(w http.ResponseWriter, r *http.Request) {
	loc := i18n.Resolve(r)
	nav := BuildNav(r.URL.Path, userPtr(r), loc)

	lec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := lecturePageData{Nav: nav, Lecture: lec}
	if err := s.pages.renderPartial(w, "lecture_detail.html", "lecture_status", data); err != nil {
		s.logger.Error("render lecture status", "error", err)
	}
}

func (s *Server) handleLectureAudio(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromCtx(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if s.audio == nil {
		http.Error(w, "audio storage not configured", http.StatusNotFound)
		return
	}

	lec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if lec.AudioPath == nil {
		http.Error(w, "lecture has no audio", http.StatusNotFound)
		return
	}

	rc, contentType, err := s.audio.Open(r.Context(), user.ID, *lec.AudioPath)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("stream audio", "lecture", lec.ID, "error", err)
	}
}

func (s *Server) handleAPICreateLecture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	id, err := s.store.Create(r.Context(), domain.LectureDraft{Title: title})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if middleware.IsHTMX(r) {
		w.Header().Set("HX-Redirect", "/lectures/"+id)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/lectures/"+id, http.StatusSeeOther)
}

func (s *Server) handleAPIUpdateLecture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	var update domain.LectureUpdate
	if v := strings.TrimSpace(r.PostFormValue("title")); v != "" {
		update.Title = &v
	}
	if r.PostForm.Has("transcript") {
		v := r.PostFormValue("transcript")
		update.Transcript = &v
	}
	if update.Empty() {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	if err := s.store.Update(r.Context(), chi.URLParam(r, "id"), update); err != nil {
		s.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIDeleteLecture(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.renderError(w, r, err)
		return
	}

	if middleware.IsHTMX(r) {
		// Row swap: empty response removes the row.
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/lectures", http.StatusSeeOther)
}

// userPtr adapts the context lookup to the nav builder's optional user.
func userPtr(r *http.Request) *domain.User {
	if u, ok := domain.UserFromCtx(r.Context()); ok {
		return &u
	}
	return nil
}

// renderError maps data-layer errors onto HTTP statuses.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
