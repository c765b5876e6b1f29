package dto

import (
	"github.com/taskflow/taskflow-api/internal/models"
)

// TaskDTO represents a task in API responses, annotated with display names
// for the project, assignee, and creator.
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	ProjectID    *uint64             `json:"project_id"`
	AssignedTo   uint64              `json:"assigned_to"`
	CreatedBy    uint64              `json:"created_by"`
	DueDate      *int64              `json:"due_date"`
	CreatedAt    int64               `json:"created_at"`
	UpdatedAt    int64               `json:"updated_at"`
	ProjectName  *string             `json:"project_name"`
	AssigneeName string              `json:"assignee_name"`
	CreatorName  string              `json:"creator_name"`
}

// TaskListResponse wraps a task listing. Page and Limit are present only
// when the caller asked for pagination.
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Total int64     `json:"total"`
	Page  *int      `json:"page,omitempty"`
	Limit *int      `json:"limit,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		ProjectID:    task.ProjectID,
		AssignedTo:   task.AssignedTo,
		CreatedBy:    task.CreatedBy,
		DueDate:      toMillisPtr(task.DueDate),
		CreatedAt:    toMillis(task.CreatedAt),
		UpdatedAt:    toMillis(task.UpdatedAt),
		AssigneeName: displayName(task.Assignee),
		CreatorName:  displayName(task.Creator),
	}

	if task.Project != nil && task.Project.ID != 0 {
		name := task.Project.Name
		dto.ProjectName = &name
	}

	return dto
}

// ToTaskListDTO converts tasks to DTOs
func ToTaskListDTO(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// displayName resolves a preloaded user to a display name, falling back to
// email and finally to the unknown-user literal.
func displayName(user models.User) string {
	if user.ID == 0 {
		return UnknownUserName
	}
	return user.DisplayName()
}
