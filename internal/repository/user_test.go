package repository

import (
	"context"
	"errors"
	"testing"

	"squadsync/internal/cache"
	"squadsync/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:         "Priya Sharma",
		SRN:          "PES1UG23CS101",
		Email:        "priya@stu.pes.edu",
		PasswordHash: "hash",
		Skills:       []string{"Go", "React"},
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "priya@stu.pes.edu", got.Email)
	assert.Equal(t, []string{"Go", "React"}, got.Skills)

	_, err = repo.GetByID(ctx, 9999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_Create_DuplicateIdentifiers(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Name: "A", SRN: "PES1UG23CS101", Email: "a@stu.pes.edu", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, first))

	tests := []struct {
		name string
		user *models.User
	}{
		{"duplicate email", &models.User{Name: "B", SRN: "PES1UG23CS102", Email: "a@stu.pes.edu", PasswordHash: "x"}},
		{"duplicate srn", &models.User{Name: "C", SRN: "PES1UG23CS101", Email: "c@stu.pes.edu", PasswordHash: "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Create(ctx, tc.user)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
			assert.Equal(t, models.CodeConflict, appErr.Code)
		})
	}
}

func TestUserRepository_GetByEmailOrSRN(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "A", SRN: "PES1UG23CS101", Email: "priya@stu.pes.edu", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	t.Run("matches email case-insensitively", func(t *testing.T) {
		got, err := repo.GetByEmailOrSRN(ctx, "PRIYA@stu.pes.edu")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("matches SRN case-insensitively", func(t *testing.T) {
		got, err := repo.GetByEmailOrSRN(ctx, "pes1ug23cs101")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown identifier yields nil without error", func(t *testing.T) {
		got, err := repo.GetByEmailOrSRN(ctx, "nobody@stu.pes.edu")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserRepository_GetByEmail_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByEmail(context.Background(), "missing@stu.pes.edu")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_IncrementInterestsSent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "A", SRN: "PES1UG23CS101", Email: "a@stu.pes.edu", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.IncrementInterestsSent(ctx, user.ID))
	require.NoError(t, repo.IncrementInterestsSent(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.InterestsSent)
}

// withCache points the cache package at a throwaway miniredis for one test.
func withCache(t *testing.T) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})
}

func TestUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	withCache(t)
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMye"
	user := &models.User{Name: "A", SRN: "PES1UG23CS101", Email: "a@stu.pes.edu", PasswordHash: hash}
	require.NoError(t, repo.Create(ctx, user))

	// First read warms the cache; second read is served from it.
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, first.PasswordHash)

	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, second.PasswordHash, "cache round trip must keep the credential")

	// Saving a cache-served record must not wipe the stored hash.
	second.Bio = "Backend developer"
	require.NoError(t, repo.Update(ctx, second))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, hash, stored.PasswordHash)
	assert.Equal(t, "Backend developer", stored.Bio)
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "A", SRN: "PES1UG23CS101", Email: "a@stu.pes.edu", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	user.Bio = "Backend developer"
	user.Skills = []string{"Go"}
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend developer", got.Bio)
	assert.Equal(t, []string{"Go"}, got.Skills)
}
