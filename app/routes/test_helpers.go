package routes

import (
	"testing"

	"commentboard/app/models"
	"commentboard/app/repositories"

	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T, driver string) repositories.Storage {
	path := ""
	if driver == repositories.DriverSQLite {
		path = ":memory:"
	}
	storage, err := repositories.Open(driver, path)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func setupTestData(t *testing.T, storage repositories.Storage) *models.Post {
	post := &models.Post{
		UserID: 1,
		Title:  "Test Post",
		Body:   "This is a test post",
	}
	post.BeforeCreate()
	require.NoError(t, storage.Posts().Create(post))
	return post
}
