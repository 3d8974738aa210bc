package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/tasks"
)

const taskStatusTimeout = 5 * time.Second

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
}

func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"task_types": tasks.Types(),
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), taskStatusTimeout)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
// Accepts optional parameters as JSON or form fields.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var params tasks.Params
	if c.ContentType() == "application/x-www-form-urlencoded" || c.ContentType() == "multipart/form-data" {
		_ = c.ShouldBind(&params)
	} else if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&params)
	}

	task, err := tasks.NewTask(taskType, params)
	if err != nil {
		tc.respondTaskError(c, err.Error())
		return
	}

	id, err := tc.queue.Enqueue(task)
	if err != nil {
		log.Printf("Failed to enqueue task %s: %v", taskType, err)
		tc.respondTaskError(c, fmt.Sprintf("failed to enqueue %s", taskType))
		return
	}

	result := gin.H{"task_id": id, "type": taskType}
	if isHTMXRequest(c) {
		respondHTMXOrJSON(c, http.StatusOK, "task-result", result)
		return
	}
	respondAccepted(c, "task enqueued", result)
}

func (tc *TasksController) respondTaskError(c *gin.Context, message string) {
	if isHTMXRequest(c) {
		c.HTML(http.StatusOK, "task-result", gin.H{"Error": message})
		return
	}
	respondBadRequest(c, message)
}
