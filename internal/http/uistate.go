package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/security"
)

const (
	sessionKeyPage      = "ui.page"
	sessionKeyFlash     = "ui.flash"
	sessionKeyFlashKind = "ui.flash_kind"

	defaultPage = "dashboard"

	flashSuccess = "success"
	flashError   = "error"
)

var uiPages = map[string]bool{
	"dashboard":    true,
	"books":        true,
	"members":      true,
	"transactions": true,
}

// UIState is what the browser UI remembers between requests: the page
// last shown and a message waiting to be displayed once.
type UIState struct {
	Page      string
	Flash     string
	FlashKind string
}

// uiStateStore keeps UIState in the visitor's session. Without a session
// manager nothing is remembered.
type uiStateStore struct {
	sessions *security.SessionManager
}

// LastPage returns the page the visitor saw last without touching the flash.
func (s uiStateStore) LastPage(c *gin.Context) string {
	if s.sessions == nil {
		return defaultPage
	}
	if page := s.sessions.GetString(c.Request.Context(), sessionKeyPage); uiPages[page] {
		return page
	}
	return defaultPage
}

// Load returns the stored state and clears the flash.
func (s uiStateStore) Load(c *gin.Context) UIState {
	state := UIState{Page: s.LastPage(c)}
	if s.sessions == nil {
		return state
	}
	ctx := c.Request.Context()
	state.Flash = s.sessions.PopString(ctx, sessionKeyFlash)
	state.FlashKind = s.sessions.PopString(ctx, sessionKeyFlashKind)
	return state
}

func (s uiStateStore) SetPage(c *gin.Context, page string) {
	if s.sessions == nil || !uiPages[page] {
		return
	}
	s.sessions.Put(c.Request.Context(), sessionKeyPage, page)
}

// SetFlash queues a message for the next full page render.
func (s uiStateStore) SetFlash(c *gin.Context, kind, message string) {
	if s.sessions == nil {
		return
	}
	ctx := c.Request.Context()
	s.sessions.Put(ctx, sessionKeyFlash, message)
	s.sessions.Put(ctx, sessionKeyFlashKind, kind)
}
