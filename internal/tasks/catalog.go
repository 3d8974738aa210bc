package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"
)

// TypeInfo describes a task that can be triggered by hand.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// Types lists the maintenance tasks the queue knows how to run.
func Types() []TypeInfo {
	return []TypeInfo{
		{
			Type:        OverdueScanQueue,
			Description: "Count borrowed books past their due date",
			Queue:       OverdueScanQueue,
		},
		{
			Type:        CleanupAuditEventsQueue,
			Description: "Delete audit events older than the retention period",
			Queue:       CleanupAuditEventsQueue,
		},
	}
}

// Params carries the optional inputs of a manually triggered task.
type Params struct {
	RetentionDays int `form:"retention_days" json:"retention_days"`
}

// NewTask builds the task for a type name.
func NewTask(taskType string, params Params) (backlite.Task, error) {
	switch taskType {
	case OverdueScanQueue:
		return OverdueScanTask{}, nil
	case CleanupAuditEventsQueue:
		if params.RetentionDays < 0 {
			return nil, fmt.Errorf("retention_days must not be negative")
		}
		return CleanupAuditEventsTask{RetentionDays: params.RetentionDays}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}
