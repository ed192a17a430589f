package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospital-api/internal/domain"
	"hospital-api/internal/repo"
	"hospital-api/internal/testutil"
)

func newUserRepo(t *testing.T) *repo.UserRepo {
	t.Helper()
	db := testutil.OpenDB(t)
	require.NoError(t, repo.Migrate(db))
	return repo.NewUserRepo(db)
}

func johnDoe() domain.User {
	return domain.User{
		FirstName:   "John",
		LastName:    "Doe",
		Emails:      "john.doe@example.com",
		Password:    "password",
		Role:        domain.RoleAdministrator,
		Address:     "123 Main St",
		PhoneNumber: "555-1234",
		Jmbg:        1234567890,
		Gender:      domain.GenderMale,
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)

	u := johnDoe()
	u.HeartRates = []float64{72, 75.5}
	require.NoError(t, r.Create(ctx, &u))
	require.NotZero(t, u.ID)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
}

func TestUserRepo_CreateKeepsCallerID(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)

	u := johnDoe()
	u.ID = 42
	require.NoError(t, r.Create(ctx, &u))
	assert.Equal(t, uint(42), u.ID)

	dup := johnDoe()
	dup.ID = 42
	assert.ErrorIs(t, r.Create(ctx, &dup), domain.ErrAlreadyExists)

	next := johnDoe()
	require.NoError(t, r.Create(ctx, &next))
	assert.Equal(t, uint(43), next.ID)
}

func TestUserRepo_CreateInvalidLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)

	u := johnDoe()
	u.Emails = "invalid_email"
	u.FirstName = ""
	err := r.Create(ctx, &u)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasField("Emails"))
	assert.True(t, ve.HasField("FirstName"))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepo_NilInput(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)
	assert.ErrorIs(t, r.Create(ctx, nil), domain.ErrNullInput)
	assert.ErrorIs(t, r.Update(ctx, nil), domain.ErrNullInput)
	assert.ErrorIs(t, r.Delete(ctx, nil), domain.ErrNullInput)
}

func TestUserRepo_GetAll(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, name := range []string{"Ana", "Ivan", "Mila"} {
		u := johnDoe()
		u.FirstName = name
		require.NoError(t, r.Create(ctx, &u))
	}
	all, err = r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana", all[0].FirstName)
}

func TestUserRepo_GetMissing(t *testing.T) {
	r := newUserRepo(t)
	_, err := r.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "user with id 7 does not exist")
}

func TestUserRepo_Update(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)
	u := johnDoe()
	require.NoError(t, r.Create(ctx, &u))

	u.FirstName = "Updated First Name"
	u.LastName = "Updated Last Name"
	u.Emails = "updated.email@example.com"
	u.Address = ""
	require.NoError(t, r.Update(ctx, &u))

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
	assert.Empty(t, got.Address)
}

func TestUserRepo_UpdateInvalidKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)
	u := johnDoe()
	require.NoError(t, r.Create(ctx, &u))

	bad := u
	bad.LastName = ""
	require.ErrorIs(t, r.Update(ctx, &bad), domain.ErrValidationFailed)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doe", got.LastName)
}

func TestUserRepo_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)
	u := johnDoe()
	u.ID = 99
	// the existence check wins over validation
	u.Emails = ""
	assert.ErrorIs(t, r.Update(ctx, &u), domain.ErrNotFound)
}

func TestUserRepo_Delete(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t)
	u := johnDoe()
	require.NoError(t, r.Create(ctx, &u))

	require.NoError(t, r.Delete(ctx, &u))
	_, err := r.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, &u), domain.ErrNotFound)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	require.NoError(t, repo.Migrate(db))

	require.NoError(t, repo.Seed(ctx, db, zap.NewNop()))
	require.NoError(t, repo.Seed(ctx, db, zap.NewNop()))

	users, err := repo.NewUserRepo(db).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, uint(1), users[0].ID)
	assert.Equal(t, "john.doe@example.com", users[0].Emails)
	assert.Equal(t, domain.GenderFemale, users[1].Gender)

	rooms, err := repo.NewRoomRepo(db).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, domain.Room{ID: 3, Number: "305B", Floor: 3}, rooms[2])
}
