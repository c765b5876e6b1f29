package dto

import (
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint64 `json:"owner_id"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// ProjectWithCountsDTO is a project annotated with its live task counts
type ProjectWithCountsDTO struct {
	ProjectDTO
	TaskCount      int64 `json:"task_count"`
	CompletedTasks int64 `json:"completed_tasks"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   toMillis(project.CreatedAt),
		UpdatedAt:   toMillis(project.UpdatedAt),
	}
}

// ToProjectWithCountsDTO converts an annotated project row to its DTO
func ToProjectWithCountsDTO(project repository.ProjectWithCounts) ProjectWithCountsDTO {
	return ProjectWithCountsDTO{
		ProjectDTO:     ToProjectDTO(project.Project),
		TaskCount:      project.TaskCount,
		CompletedTasks: project.CompletedTasks,
	}
}

// ToProjectListDTO converts annotated project rows to DTOs
func ToProjectListDTO(projects []repository.ProjectWithCounts) []ProjectWithCountsDTO {
	items := make([]ProjectWithCountsDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectWithCountsDTO(p)
	}
	return items
}
