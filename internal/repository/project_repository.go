package repository

import (
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// countsQuery annotates project rows with live task counts. Grouping by the
// primary key keeps the aggregation valid under ONLY_FULL_GROUP_BY.
func (r *GormProjectRepository) countsQuery() *gorm.DB {
	return r.db.Model(&models.Project{}).
		Select("projects.*, COUNT(tasks.id) AS task_count, COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS completed_tasks",
			models.TaskStatusCompleted).
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id")
}

// FindByIDWithCounts finds a project with its task counts
func (r *GormProjectRepository) FindByIDWithCounts(id uint64) (*ProjectWithCounts, error) {
	var project ProjectWithCounts
	if err := r.countsQuery().Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner lists an owner's projects with task counts, newest first
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]ProjectWithCounts, error) {
	var projects []ProjectWithCounts
	err := r.countsQuery().
		Where("projects.owner_id = ?", ownerID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project, its tasks, and their comments in one transaction
// so concurrent readers never observe a partial cascade.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
