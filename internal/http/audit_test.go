package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookalchemy/internal/entities"
)

type fakeAuditReader struct {
	events    []entities.AuditEvent
	err       error
	lastType  entities.AuditEventType
	lastLimit int
}

func (f *fakeAuditReader) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	f.lastLimit = limit
	return f.page(f.events, limit, offset)
}

func (f *fakeAuditReader) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	f.lastType = eventType
	f.lastLimit = limit
	var matched []entities.AuditEvent
	for _, e := range f.events {
		if e.EventType == eventType {
			matched = append(matched, e)
		}
	}
	return f.page(matched, limit, offset)
}

func (f *fakeAuditReader) page(events []entities.AuditEvent, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	total := int64(len(events))
	if offset >= len(events) {
		return nil, total, nil
	}
	end := min(offset+limit, len(events))
	return events[offset:end], total, nil
}

func getAudit(t *testing.T, reader AuditReader, query string) (*httptest.ResponseRecorder, PaginatedResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/audit", NewAuditController(reader).GetAuditEvents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/audit"+query, nil)
	router.ServeHTTP(w, req)

	var resp PaginatedResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	reader := &fakeAuditReader{events: []entities.AuditEvent{
		{ID: 3, EventType: entities.AuditEventDelete, Action: "book_delete"},
		{ID: 2, EventType: entities.AuditEventAdd, Action: "book_add"},
		{ID: 1, EventType: entities.AuditEventAdd, Action: "author_add"},
	}}

	t.Run("default pagination", func(t *testing.T) {
		w, resp := getAudit(t, reader, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, defaultAuditLimit, resp.Limit)
		assert.False(t, resp.HasMore)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, resp := getAudit(t, reader, "?limit=5000")

		assert.Equal(t, defaultAuditLimit, resp.Limit)
		assert.Equal(t, defaultAuditLimit, reader.lastLimit)
	})

	t.Run("has more", func(t *testing.T) {
		_, resp := getAudit(t, reader, "?limit=1&offset=1")

		assert.Equal(t, 1, resp.Offset)
		assert.True(t, resp.HasMore)
	})

	t.Run("filters by type", func(t *testing.T) {
		_, resp := getAudit(t, reader, "?type=add")

		assert.Equal(t, entities.AuditEventAdd, reader.lastType)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("empty page is an empty array", func(t *testing.T) {
		w, _ := getAudit(t, reader, "?offset=10")

		assert.Contains(t, w.Body.String(), `"data":[]`)
	})

	t.Run("reader failure", func(t *testing.T) {
		w, _ := getAudit(t, &fakeAuditReader{err: errors.New("disk full")}, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}
