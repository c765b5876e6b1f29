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

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
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

	projectService := services.NewProjectService(repository.NewProjectRepository(suite.db))
	suite.handler = NewProjectHandler(projectService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// newRouter returns a router with project routes authenticated as userID
func (suite *ProjectHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})
	r.GET("/api/projects", suite.handler.ListProjects)
	r.POST("/api/projects", suite.handler.CreateProject)
	r.GET("/api/projects/:id", suite.handler.GetProject)
	r.PUT("/api/projects/:id", suite.handler.UpdateProject)
	r.DELETE("/api/projects/:id", suite.handler.DeleteProject)
	return r
}

func (suite *ProjectHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
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

func (suite *ProjectHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, ownerID uint64, createdAt time.Time) *models.Project {
	project := &models.Project{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
	suite.db.Create(project)
	return project
}

func (suite *ProjectHandlerTestSuite) createTestTask(title string, userID uint64, projectID *uint64, status models.TaskStatus) *models.Task {
	task := &models.Task{
		Title:      title,
		Status:     status,
		Priority:   models.TaskPriorityMedium,
		ProjectID:  projectID,
		AssignedTo: userID,
		CreatedBy:  userID,
	}
	suite.db.Create(task)
	return task
}

func (suite *ProjectHandlerTestSuite) TestListProjects_CountsAndOrder() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	now := time.Now()
	older := suite.createTestProject("Older", user.ID, now.Add(-2*time.Hour))
	newer := suite.createTestProject("Newer", user.ID, now.Add(-1*time.Hour))
	suite.createTestProject("Not Mine", other.ID, now)

	suite.createTestTask("one", user.ID, &older.ID, models.TaskStatusTodo)
	suite.createTestTask("two", user.ID, &older.ID, models.TaskStatusCompleted)
	suite.createTestTask("three", user.ID, &older.ID, models.TaskStatusCompleted)

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodGet, "/api/projects", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Projects []dto.ProjectWithCountsDTO `json:"projects"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Projects, 2)

	// Newest first
	assert.Equal(suite.T(), newer.ID, response.Projects[0].ID)
	assert.Equal(suite.T(), "Newer", response.Projects[0].Name)
	assert.Equal(suite.T(), "Older", response.Projects[1].Name)

	assert.Equal(suite.T(), int64(0), response.Projects[0].TaskCount)
	assert.Equal(suite.T(), int64(3), response.Projects[1].TaskCount)
	assert.Equal(suite.T(), int64(2), response.Projects[1].CompletedTasks)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("owner@example.com")

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodPost, "/api/projects", map[string]string{
		"name":        "Launch",
		"description": "Release checklist",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Launch", response.Name)
	assert.Equal(suite.T(), "Release checklist", response.Description)
	assert.Equal(suite.T(), user.ID, response.OwnerID)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_BlankName() {
	user := suite.createTestUser("owner@example.com")

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodPost, "/api/projects", map[string]string{
		"name": "   ",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_PartialPatch() {
	user := suite.createTestUser("owner@example.com")
	router := suite.newRouter(user.ID)

	w := suite.doJSON(router, http.MethodPost, "/api/projects", map[string]string{
		"name":        "X",
		"description": "Y",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	// Ensure updated_at moves past created_at at millisecond resolution
	time.Sleep(10 * time.Millisecond)

	w = suite.doJSON(router, http.MethodPut, "/api/projects/1", map[string]string{
		"name": "Z",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(suite.T(), "Z", updated.Name)
	assert.Equal(suite.T(), "Y", updated.Description, "description should be unchanged")
	assert.Greater(suite.T(), updated.UpdatedAt, created.CreatedAt)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_NotOwner() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	suite.createTestProject("Private", owner.ID, time.Now())

	w := suite.doJSON(suite.newRouter(intruder.ID), http.MethodPut, "/api/projects/1", map[string]string{
		"name": "Hijacked",
	})
	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	user := suite.createTestUser("owner@example.com")

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodGet, "/api/projects/999", nil)
	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_Cascade() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Doomed", user.ID, time.Now())

	task1 := suite.createTestTask("a", user.ID, &project.ID, models.TaskStatusTodo)
	task2 := suite.createTestTask("b", user.ID, &project.ID, models.TaskStatusInProgress)
	suite.createTestTask("unrelated", user.ID, nil, models.TaskStatusTodo)

	suite.db.Create(&models.Comment{TaskID: task1.ID, UserID: user.ID, Content: "first"})
	suite.db.Create(&models.Comment{TaskID: task2.ID, UserID: user.ID, Content: "second"})

	w := suite.doJSON(suite.newRouter(user.ID), http.MethodDelete, "/api/projects/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var projectCount, taskCount, commentCount int64
	suite.db.Model(&models.Project{}).Count(&projectCount)
	suite.db.Model(&models.Task{}).Count(&taskCount)
	suite.db.Model(&models.Comment{}).Count(&commentCount)

	assert.Equal(suite.T(), int64(0), projectCount)
	assert.Equal(suite.T(), int64(1), taskCount, "only the task outside the project survives")
	assert.Equal(suite.T(), int64(0), commentCount)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_NotOwner() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	suite.createTestProject("Private", owner.ID, time.Now())

	w := suite.doJSON(suite.newRouter(intruder.ID), http.MethodDelete, "/api/projects/1", nil)
	suite.Require().Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
