package memory

import (
	"context"

	"github.com/tendant/learning-tracks/internal/domain"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.do(func(d *dataset) error {
		for _, u := range d.users {
			if u.Name == user.Name || u.Email == user.Email {
				return domain.ErrUserExists
			}
		}
		d.nextUserID++
		user.ID = d.nextUserID
		user.CreatedAt = r.store.now()
		d.users[user.ID] = *user
		return nil
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := r.store.do(func(d *dataset) error {
		for _, u := range d.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return out, err
}
