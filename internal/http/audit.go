package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var auditEntityTypes = map[string]bool{
	"":            true,
	"book":        true,
	"member":      true,
	"transaction": true,
	"maintenance": true,
}

// AuditController serves the audit trail.
type AuditController struct {
	auditService AuditReader
}

func NewAuditController(auditService AuditReader) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns paginated audit events as JSON, newest first.
// GET /api/audit?entity=book&page=1&limit=25
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	entity := c.Query("entity")
	if !auditEntityTypes[entity] {
		respondBadRequest(c, "invalid entity")
		return
	}

	page, limit, offset := parsePagination(c, 25, 100)

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), entity, limit, offset)
	if err != nil {
		respondInternalError(c, err, "get audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    page < totalPages,
		TotalPages: totalPages,
	})
}
