package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-api/internal/core/cache"
	"hospital-api/internal/domain"
	"hospital-api/internal/repo"
	"hospital-api/internal/service"
	"hospital-api/internal/testutil"
)

func newRoomService(t *testing.T, opts ...service.Option) *service.RoomService {
	t.Helper()
	db := testutil.OpenDB(t)
	require.NoError(t, repo.Migrate(db))
	return service.NewRoomService(repo.NewRoomRepo(db), opts...)
}

func newUserService(t *testing.T, opts ...service.Option) *service.UserService {
	t.Helper()
	db := testutil.OpenDB(t)
	require.NoError(t, repo.Migrate(db))
	return service.NewUserService(repo.NewUserRepo(db), opts...)
}

func validUser() *domain.User {
	return &domain.User{
		FirstName: "Jane",
		LastName:  "Smith",
		Emails:    "jane.smith@example.com",
		Password:  "password",
		Role:      domain.RoleUser,
		Gender:    domain.GenderFemale,
	}
}

func TestRoomService_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newRoomService(t)

	rm := &domain.Room{Number: "101A", Floor: 1}
	require.NoError(t, s.Create(ctx, rm))

	got, err := s.GetByID(ctx, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, *rm, *got)

	rm.Floor = 4
	require.NoError(t, s.Update(ctx, rm))
	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].Floor)

	require.NoError(t, s.Delete(ctx, rm.ID))
	_, err = s.GetByID(ctx, rm.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_NullInput(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)
	assert.ErrorIs(t, s.Create(ctx, nil), domain.ErrNullInput)
	assert.ErrorIs(t, s.Update(ctx, nil), domain.ErrNullInput)
}

func TestUserService_CreateInvalid(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)

	u := validUser()
	u.Emails = "invalid_email"
	err := s.Create(ctx, u)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Contains(t, err.Error(), "Emails")

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserService_UpdateChecksExistenceFirst(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)

	u := validUser()
	u.ID = 12
	u.LastName = ""
	assert.ErrorIs(t, s.Update(ctx, u), domain.ErrNotFound)

	u = validUser()
	require.NoError(t, s.Create(ctx, u))
	bad := *u
	bad.LastName = ""
	assert.ErrorIs(t, s.Update(ctx, &bad), domain.ErrValidationFailed)

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smith", got.LastName)
}

func TestService_DeleteMissing(t *testing.T) {
	s := newRoomService(t)
	assert.ErrorIs(t, s.Delete(context.Background(), 3), domain.ErrNotFound)
}

// nilRepo reports missing rooms as (nil, nil) and counts reads. afterRead,
// when set, runs once a GetByID has copied its row.
type nilRepo struct {
	rooms     map[uint]domain.Room
	reads     int
	fail      error
	afterRead func()
}

func (r *nilRepo) GetAll(context.Context) ([]domain.Room, error) {
	r.reads++
	if r.fail != nil {
		return nil, r.fail
	}
	var out []domain.Room
	for _, rm := range r.rooms {
		out = append(out, rm)
	}
	return out, nil
}

func (r *nilRepo) GetByID(_ context.Context, id uint) (*domain.Room, error) {
	r.reads++
	if r.fail != nil {
		return nil, r.fail
	}
	rm, ok := r.rooms[id]
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &rm, nil
}

func (r *nilRepo) Create(_ context.Context, rm *domain.Room) error {
	r.rooms[rm.ID] = *rm
	return nil
}

func (r *nilRepo) Update(_ context.Context, rm *domain.Room) error {
	r.rooms[rm.ID] = *rm
	return nil
}

func (r *nilRepo) Delete(_ context.Context, rm *domain.Room) error {
	delete(r.rooms, rm.ID)
	return nil
}

func TestService_NilEntityIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := service.NewRoomService(&nilRepo{rooms: map[uint]domain.Room{}})

	_, err := s.GetByID(ctx, 9)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "room with id 9 does not exist")

	assert.ErrorIs(t, s.Delete(ctx, 9), domain.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &domain.Room{ID: 9, Number: "101", Floor: 1}), domain.ErrNotFound)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestService_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	r := &nilRepo{rooms: map[uint]domain.Room{1: {ID: 1, Number: "101A", Floor: 1}}}
	mem := cache.NewMemory()
	s := service.NewRoomService(r, service.WithCache(mem, time.Minute))

	for range 3 {
		got, err := s.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "101A", got.Number)
	}
	assert.Equal(t, 1, r.reads)

	_, err := s.GetAll(ctx)
	require.NoError(t, err)
	_, err = s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.reads)

	// a write moves readers to a fresh generation
	require.NoError(t, s.Update(ctx, &domain.Room{ID: 1, Number: "102B", Floor: 2}))
	reads := r.reads

	got, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "102B", got.Number)
	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "102B", all[0].Number)
	assert.Equal(t, reads+2, r.reads)
}

func TestService_ReadOverlappingUpdateDoesNotCacheOldRow(t *testing.T) {
	ctx := context.Background()
	r := &nilRepo{rooms: map[uint]domain.Room{1: {ID: 1, Number: "101A", Floor: 1}}}
	s := service.NewRoomService(r, service.WithCache(cache.NewMemory(), time.Minute))

	copied := make(chan struct{})
	resume := make(chan struct{})
	r.afterRead = func() {
		close(copied)
		<-resume
	}

	slow := make(chan *domain.Room)
	go func() {
		rm, err := s.GetByID(ctx, 1)
		assert.NoError(t, err)
		slow <- rm
	}()
	<-copied

	require.NoError(t, s.Update(ctx, &domain.Room{ID: 1, Number: "999Z", Floor: 9}))
	close(resume)
	// the read began before the update, so the old row is a fair answer
	assert.Equal(t, "101A", (<-slow).Number)

	got, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "999Z", got.Number)
}

func TestUserService_PasswordNeverReadOrCached(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory()
	s := newUserService(t, service.WithCache(mem, time.Minute))

	u := validUser()
	require.NoError(t, s.Create(ctx, u))
	assert.Equal(t, "password", u.Password)

	for range 2 {
		got, err := s.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Password)
		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all[0].Password)
	}

	raw, err := mem.GetOrLoad(ctx, "hospital:user:g1:1", time.Minute, func(context.Context) ([]byte, error) {
		return nil, errors.New("entry should be cached")
	})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	// updates still carry the password through to the store
	upd := validUser()
	upd.ID = u.ID
	upd.FirstName = "Janet"
	require.NoError(t, s.Update(ctx, upd))
}

func TestService_CacheDoesNotHideErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store down")
	r := &nilRepo{rooms: map[uint]domain.Room{}, fail: boom}
	mem := cache.NewMemory()
	s := service.NewRoomService(r, service.WithCache(mem, time.Minute))

	_, err := s.GetByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = s.GetAll(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mem.Len())

	r.fail = nil
	_, err = s.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
