package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hospital-api/internal/domain"
	"hospital-api/internal/feature/user"
	"hospital-api/internal/validation"
)

const kindUser = "user"

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	var rows []user.UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var m user.UserModel
	if err := find(ctx, r.db, &m, kindUser, id); err != nil {
		return nil, err
	}
	u := m.ToDomain()
	return &u, nil
}

// Create validates u, inserts it and writes the assigned id back into u.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u == nil {
		return domain.ErrNullInput
	}
	if err := validation.CheckUser(u); err != nil {
		return err
	}
	m := user.FromDomain(u)
	if err := insert(ctx, r.db, m, kindUser, u.ID); err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	if u == nil {
		return domain.ErrNullInput
	}
	var cur user.UserModel
	if err := find(ctx, r.db, &cur, kindUser, u.ID); err != nil {
		return err
	}
	if err := validation.CheckUser(u); err != nil {
		return err
	}
	return updateVersioned(ctx, r.db, &user.UserModel{}, kindUser, u.ID, cur.Version, user.FromDomain(u).Changes())
}

func (r *UserRepo) Delete(ctx context.Context, u *domain.User) error {
	if u == nil {
		return domain.ErrNullInput
	}
	var cur user.UserModel
	if err := find(ctx, r.db, &cur, kindUser, u.ID); err != nil {
		return err
	}
	return deleteVersioned(ctx, r.db, &user.UserModel{}, kindUser, u.ID, cur.Version)
}
