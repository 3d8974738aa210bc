package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/readonly"
	"github.com/mrlokans/librarydesk/internal/security"
)

const defaultLoanDays = 14

// UIController serves the browser pages, the HTMX partials they load and
// the form posts they submit.
type UIController struct {
	library LibraryService
	state   uiStateStore
	now     func() time.Time
}

// NewUIController creates the controller for pages and HTMX partials.
// Without sessions the UI keeps no state between requests.
func NewUIController(library LibraryService, sessions *security.SessionManager) *UIController {
	return &UIController{
		library: library,
		state:   uiStateStore{sessions: sessions},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// pageData builds the data for a full page and remembers it as the last
// page shown.
func (u *UIController) pageData(c *gin.Context, page string, data gin.H) gin.H {
	u.state.SetPage(c, page)
	state := u.state.Load(c)

	data["Page"] = page
	data["Flash"] = state.Flash
	data["FlashKind"] = state.FlashKind
	data["ReadOnly"] = readonly.Enabled(c)
	return partialData(c, data)
}

func partialData(c *gin.Context, data gin.H) gin.H {
	data["CSRFToken"] = security.GetCSRFToken(c)
	data["CSRFFieldName"] = security.CSRFFieldName
	return data
}

// Index sends the visitor back to the page they were on.
func (u *UIController) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+u.state.LastPage(c))
}

// DashboardPage renders the dashboard.
func (u *UIController) DashboardPage(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "dashboard", u.pageData(c, "dashboard", gin.H{
		"Stats":   u.library.Stats(ctx),
		"Overdue": u.library.ListOverdue(ctx, entities.OverdueCutoff(u.now())),
	}))
}

// DashboardStats re-renders the counters.
func (u *UIController) DashboardStats(c *gin.Context) {
	c.HTML(http.StatusOK, "stats", gin.H{
		"Stats": u.library.Stats(c.Request.Context()),
	})
}

// CloseModal empties the modal container.
func (u *UIController) CloseModal(c *gin.Context) {
	c.Status(http.StatusOK)
}

// respondWritten answers a successful or failed form post. HTMX requests
// get the refreshed table with the modal cleared and the flash shown;
// plain form posts are redirected back to the page with the flash kept
// in the session.
func (u *UIController) respondWritten(c *gin.Context, page, result string, data func() gin.H, kind, message string) {
	if !isHTMXRequest(c) {
		u.state.SetFlash(c, kind, message)
		c.Redirect(http.StatusSeeOther, "/"+page)
		return
	}

	payload := partialData(c, data())
	payload["Flash"] = message
	payload["FlashKind"] = kind
	c.HTML(http.StatusOK, result, payload)
}

// respondFormError shows the form again with the rejection reason. For
// HTMX the response is retargeted into the modal the form came from.
func (u *UIController) respondFormError(c *gin.Context, page, form string, data gin.H, err error) {
	message := err.Error()

	if !isHTMXRequest(c) {
		u.state.SetFlash(c, flashError, message)
		c.Redirect(http.StatusSeeOther, "/"+page)
		return
	}

	data["Error"] = message
	c.Header("HX-Retarget", "#modal")
	c.Header("HX-Reswap", "innerHTML")
	c.HTML(http.StatusOK, form, partialData(c, data))
}

// parseUIID reads a path ID for the HTML endpoints.
func parseUIID(c *gin.Context, what string) (uint, bool) {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid %s ID", what)
		return 0, false
	}
	return id, true
}
