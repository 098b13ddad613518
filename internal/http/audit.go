package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/entities"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// GetAuditEvents returns paginated audit events, newest first.
// GET /api/audit?limit=&offset=&type=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit := queryInt(c, "limit", defaultAuditLimit)
	if limit == 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}
	offset := queryInt(c, "offset", 0)

	var events []entities.AuditEvent
	var total int64
	var err error

	if eventType := c.Query("type"); eventType != "" {
		events, total, err = ac.reader.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = ac.reader.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
