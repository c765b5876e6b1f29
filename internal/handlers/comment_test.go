package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CommentHandlerTestSuite defines the test suite for CommentHandler
type CommentHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *CommentHandler
}

// SetupTest runs before each test
func (suite *CommentHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	commentService := services.NewCommentService(
		repository.NewCommentRepository(suite.db),
		repository.NewTaskRepository(suite.db),
	)
	suite.handler = NewCommentHandler(commentService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *CommentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// newRouter returns a router with comment routes authenticated as userID
func (suite *CommentHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})
	r.GET("/api/tasks/:id/comments", suite.handler.ListComments)
	r.POST("/api/tasks/:id/comments", suite.handler.AddComment)
	r.DELETE("/api/comments/:id", suite.handler.DeleteComment)
	return r
}

func (suite *CommentHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *CommentHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *CommentHandlerTestSuite) createTestTask(userID uint64) *models.Task {
	task := &models.Task{
		Title:      "Test Task",
		Status:     models.TaskStatusTodo,
		Priority:   models.TaskPriorityMedium,
		AssignedTo: userID,
		CreatedBy:  userID,
	}
	suite.db.Create(task)
	return task
}

func (suite *CommentHandlerTestSuite) createTestComment(taskID, userID uint64, content string, createdAt time.Time) *models.Comment {
	comment := &models.Comment{
		TaskID:    taskID,
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	suite.db.Create(comment)
	return comment
}

func (suite *CommentHandlerTestSuite) TestListComments_ConversationOrder() {
	user := suite.createTestUser("Alice", "alice@example.com")
	task := suite.createTestTask(user.ID)

	now := time.Now()
	suite.createTestComment(task.ID, user.ID, "second", now)
	suite.createTestComment(task.ID, user.ID, "first", now.Add(-1*time.Hour))

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodGet, "/api/tasks/1/comments", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Comments, 2)

	// Oldest first
	assert.Equal(suite.T(), "first", response.Comments[0].Content)
	assert.Equal(suite.T(), "second", response.Comments[1].Content)
	assert.Equal(suite.T(), "Alice", response.Comments[0].AuthorName)
}

func (suite *CommentHandlerTestSuite) TestListComments_AuthorNameFallback() {
	named := suite.createTestUser("Alice", "alice@example.com")
	unnamed := suite.createTestUser("", "bob@example.com")
	ghost := suite.createTestUser("Ghost", "ghost@example.com")
	task := suite.createTestTask(named.ID)

	now := time.Now()
	suite.createTestComment(task.ID, named.ID, "by name", now.Add(-3*time.Hour))
	suite.createTestComment(task.ID, unnamed.ID, "by email", now.Add(-2*time.Hour))
	suite.createTestComment(task.ID, ghost.ID, "orphaned", now.Add(-1*time.Hour))

	// Author row gone, comment stays
	suite.Require().NoError(suite.db.Unscoped().Delete(&models.User{}, ghost.ID).Error)

	w := suite.doJSON(suite.newRouter(named.ID), http.MethodGet, "/api/tasks/1/comments", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Comments, 3)

	assert.Equal(suite.T(), "Alice", response.Comments[0].AuthorName)
	assert.Equal(suite.T(), "bob@example.com", response.Comments[1].AuthorName)
	assert.Equal(suite.T(), dto.UnknownUserName, response.Comments[2].AuthorName)
}

func (suite *CommentHandlerTestSuite) TestListComments_TaskNotFound() {
	user := suite.createTestUser("Alice", "alice@example.com")

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodGet, "/api/tasks/999/comments", nil)
	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *CommentHandlerTestSuite) TestAddComment_Success() {
	user := suite.createTestUser("Alice", "alice@example.com")
	task := suite.createTestTask(user.ID)

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodPost, "/api/tasks/1/comments", map[string]string{
		"content": "Looks good",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.CommentDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(suite.T(), task.ID, created.TaskID)
	assert.Equal(suite.T(), "Looks good", created.Content)
	assert.Equal(suite.T(), "Alice", created.AuthorName)
	assert.NotZero(suite.T(), created.CreatedAt)
}

func (suite *CommentHandlerTestSuite) TestAddComment_NotParty() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	stranger := suite.createTestUser("Stranger", "stranger@example.com")
	suite.createTestTask(owner.ID)

	w := suite.doJSON(suite.newRouter(stranger.ID), http.MethodPost, "/api/tasks/1/comments", map[string]string{
		"content": "Drive-by comment",
	})
	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *CommentHandlerTestSuite) TestAddComment_BlankContent() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.createTestTask(user.ID)

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodPost, "/api/tasks/1/comments", map[string]string{
		"content": "   ",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *CommentHandlerTestSuite) TestDeleteComment_AuthorOnly() {
	author := suite.createTestUser("Author", "author@example.com")
	other := suite.createTestUser("Other", "other@example.com")
	task := suite.createTestTask(author.ID)
	suite.createTestComment(task.ID, author.ID, "mine", time.Now())

	w := suite.doJSON(suite.newRouter(other.ID), http.MethodDelete, "/api/comments/1", nil)
	suite.Require().Equal(http.StatusForbidden, w.Code)

	w = suite.doJSON(suite.newRouter(author.ID), http.MethodDelete, "/api/comments/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *CommentHandlerTestSuite) TestDeleteComment_NotFound() {
	user := suite.createTestUser("Alice", "alice@example.com")

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodDelete, "/api/comments/999", nil)
	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func TestCommentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CommentHandlerTestSuite))
}
