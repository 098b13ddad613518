package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue              TaskQueue
	auditRetentionDays int
}

func NewTasksController(queue TaskQueue, auditRetentionDays int) *TasksController {
	return &TasksController{queue: queue, auditRetentionDays: auditRetentionDays}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

var cleanupAuditQueue = tasks.CleanupAuditEventsTask{}.Config().Name

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"task_types": []TaskTypeInfo{{
			Type:        cleanupAuditQueue,
			Description: "Remove audit events older than the retention period",
		}},
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")
	if taskType != cleanupAuditQueue {
		respondBadRequest(c, "unknown task type: "+taskType)
		return
	}

	id, err := tc.queue.EnqueueAuditCleanup(tc.auditRetentionDays)
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": id,
		"type":    taskType,
		"message": "task enqueued",
	})
}
