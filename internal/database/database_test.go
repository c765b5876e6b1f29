package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	prev := GetDB()
	SetDB(db)
	t.Cleanup(func() {
		SetDB(prev)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return db
}

func TestSetDB_SwapsSharedHandle(t *testing.T) {
	db := setupTestDB(t)

	require.Same(t, db, GetDB())
}

func TestPaginate(t *testing.T) {
	setupTestDB(t)

	for i := 1; i <= 5; i++ {
		require.NoError(t, GetDB().Create(&models.User{
			Name:         fmt.Sprintf("User %d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "hashedpassword",
		}).Error)
	}

	var users []models.User
	err := GetDB().
		Order("id ASC").
		Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).
		Find(&users).Error
	require.NoError(t, err)

	require.Len(t, users, 2)
	require.Equal(t, "User 3", users[0].Name)
	require.Equal(t, "User 4", users[1].Name)
}
