package repository

import (
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user's profile fields
	Update(user *models.User) error
}

// ProjectWithCounts is a project row annotated with its live task counts.
type ProjectWithCounts struct {
	models.Project
	TaskCount      int64 `gorm:"column:task_count" json:"task_count"`
	CompletedTasks int64 `gorm:"column:completed_tasks" json:"completed_tasks"`
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByIDWithCounts finds a project with its task counts
	FindByIDWithCounts(id uint64) (*ProjectWithCounts, error)

	// ListByOwner lists an owner's projects with task counts, newest first
	ListByOwner(ownerID uint64) ([]ProjectWithCounts, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project, its tasks, and their comments atomically
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks. UserID scopes the
// result to tasks where the user is assignee or creator.
type TaskFilter struct {
	UserID     uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	ProjectID  *uint64
	Pagination *utils.PaginationParams
}

// TaskStats is the aggregate summary of a user's assigned tasks.
type TaskStats struct {
	Total      int64 `gorm:"column:total" json:"total"`
	Todo       int64 `gorm:"column:todo" json:"todo"`
	InProgress int64 `gorm:"column:in_progress" json:"in_progress"`
	Completed  int64 `gorm:"column:completed" json:"completed"`
	Overdue    int64 `gorm:"column:overdue" json:"overdue"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its comments atomically
	Delete(id uint64) error

	// Stats computes the status and overdue summary for a user's assigned tasks
	Stats(userID uint64) (*TaskStats, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// ListByTask lists a task's comments with authors, oldest first
	ListByTask(taskID uint64) ([]models.Comment, error)

	// Delete removes a comment
	Delete(id uint64) error
}
