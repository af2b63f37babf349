package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Register(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Register(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	// The profile exists the moment the user does.
	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Register_DuplicateUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "uni_users_email"`))
	mock.ExpectRollback()

	err := repo.Register(context.Background(), user)
	assertRepoError(t, err, "VALIDATION_ERROR")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Register_ProfileFailureRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "profiles"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	// A failed profile insert takes the user row down with it.
	err := repo.Register(context.Background(), user)
	assertRepoError(t, err, "PROVISIONING_FAILURE")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Save_ResavesProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	user := &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
		Profile:  &models.Profile{ID: 2, UserID: 1, Bio: "new bio"},
	}

	// One user update and one profile update; no profile insert.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Save_LoadsProfileWhenMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: "hashed"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1 ORDER BY "profiles"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bio"}).AddRow(2, 1, "existing bio"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), user))

	// The existing row was re-saved, not replaced.
	require.NotNil(t, user.Profile)
	assert.Equal(t, uint(2), user.Profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Delete_CascadesToPosts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "posts" WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "profiles" WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "posts" WHERE user_id = $1`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE user_id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "profiles" WHERE user_id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assertRepoError(t, err, "NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "alice", "alice@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE "profiles"."user_id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bio"}).AddRow(2, 1, "hi"))

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "hi", user.Profile.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}
