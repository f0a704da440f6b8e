package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/sandevgo/lexbot/pkg/conv"
	"github.com/sandevgo/lexbot/pkg/log"
)

const (
	sessionCookie   = "lexbot_session"
	maxRequestBytes = 64 << 10
)

var templateFuncs = template.FuncMap{
	"markdown": func(md string) template.HTML {
		// bluemonday sanitized
		return template.HTML(conv.MarkdownToHTML([]byte(md)))
	},
	"clock": func(t time.Time) string {
		return t.Local().Format(time.DateTime)
	},
}

type pageData struct {
	BotName   string
	SessionID string
	History   []core.Exchange
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	ID        int64          `json:"id"`
	SessionID string         `json:"session_id"`
	Response  string         `json:"response"`
	Kind      core.ReplyKind `json:"kind"`
}

type historyResponse struct {
	SessionID string          `json:"session_id"`
	Exchanges []core.Exchange `json:"exchanges"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.session(w, r)

	history, err := s.chat.History(ctx, sessionID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load history")
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{BotName: core.BotName, SessionID: sessionID, History: history}
	if err := s.page.Execute(w, data); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to render page")
	}
}

// handlePagePost answers the form and redirects back to the page.
func (s *Server) handlePagePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.replyContext(r.Context())
	defer cancel()

	s.chat.Handle(ctx, chat.Message{
		SessionID: s.session(w, r),
		User:      core.GuestUser,
		Text:      r.PostForm.Get("message"),
		Transport: transportName,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "invalid json body",
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, cancel := s.replyContext(r.Context())
	defer cancel()

	ex := s.chat.Handle(ctx, chat.Message{
		SessionID: sessionID,
		User:      core.GuestUser,
		Text:      req.Message,
		Transport: transportName,
	})

	writeJSON(w, http.StatusOK, chatResponse{
		ID:        ex.ID,
		SessionID: sessionID,
		Response:  ex.Response,
		Kind:      ex.Kind,
	})
}

// handleAPIHistory lists the log of session_id, or of every session when it
// is not given.
func (s *Server) handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	history, err := s.chat.History(r.Context(), sessionID)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to load history")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     "failed to load history",
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}
	if history == nil {
		history = []core.Exchange{}
	}

	writeJSON(w, http.StatusOK, historyResponse{SessionID: sessionID, Exchanges: history})
}

// session returns the browser session id, issuing a cookie on first visit.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// later reads within this request see the same id
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
