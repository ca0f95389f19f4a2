package repository

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/testhelpers"
	"ai_interview_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(testhelpers.SetupTestDB(t))

	user := &model.User{Name: "Ann", Email: "ann@example.com", Password: "hash", Role: model.Candidate}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	byEmail, err := repo.FindByEmail("ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(user.ID + 100)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testhelpers.SetupTestDB(t))
	require.NoError(t, repo.Create(&model.User{Name: "Ann", Email: "ann@example.com", Password: "hash", Role: model.Candidate}))

	err := repo.Create(&model.User{Name: "Other", Email: "ann@example.com", Password: "hash", Role: model.Interviewer})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestUserRepository_FindByIDs(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewUserRepository(db)
	ann := testhelpers.CreateUser(t, db, "Ann", "ann@example.com", "pw", model.Candidate)
	ben := testhelpers.CreateUser(t, db, "Ben", "ben@example.com", "pw", model.Candidate)

	users, err := repo.FindByIDs([]uint{ann.ID, ben.ID, 999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Ben", users[ben.ID].Name)
	assert.Nil(t, users[999])

	empty, err := repo.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository_ListByRole(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewUserRepository(db)
	testhelpers.CreateUser(t, db, "Ann", "ann@example.com", "pw", model.Candidate)
	testhelpers.CreateUser(t, db, "Ivy", "ivy@example.com", "pw", model.Interviewer)
	testhelpers.CreateUser(t, db, "Ben", "ben@example.com", "pw", model.Candidate)

	candidates, err := repo.ListByRole(model.Candidate)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, model.Candidate, c.Role)
	}

	require.NoError(t, repo.Ping())
}
