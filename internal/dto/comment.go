package dto

import "github.com/taskflow/taskflow-api/internal/models"

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID         uint64 `json:"id"`
	TaskID     uint64 `json:"task_id"`
	UserID     uint64 `json:"user_id"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"created_at"`
	AuthorName string `json:"author_name"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:         comment.ID,
		TaskID:     comment.TaskID,
		UserID:     comment.UserID,
		Content:    comment.Content,
		CreatedAt:  toMillis(comment.CreatedAt),
		AuthorName: displayName(comment.Author),
	}
}

// ToCommentListDTO converts comments to DTOs
func ToCommentListDTO(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}
