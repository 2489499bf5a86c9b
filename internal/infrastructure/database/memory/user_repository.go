package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domainUser "stall-marketplace/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, u *domainUser.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.insertUser(u)
}

// insertUser expects the write lock to be held.
func (s *Store) insertUser(u *domainUser.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domainUser.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return domainUser.ErrUsernameAlreadyExists
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt

	s.users[u.ID] = copyUser(u)
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) find(match func(*domainUser.User) bool) (*domainUser.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context, filter *domainUser.Filter) ([]*domainUser.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*domainUser.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		if filter != nil {
			if filter.UserType != nil && u.UserType != *filter.UserType {
				continue
			}
			if filter.IsActive != nil && u.IsActive != *filter.IsActive {
				continue
			}
		}
		users = append(users, copyUser(u))
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, u *domainUser.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.users[u.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	for id, existing := range r.store.users {
		if id == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return domainUser.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return domainUser.ErrUsernameAlreadyExists
		}
	}

	u.UpdatedAt = time.Now()
	current.Username = u.Username
	current.Email = u.Email
	current.Avatar = u.Avatar
	current.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	return r.mutate(userID, func(u *domainUser.User) { u.PasswordHashed = passwordHash })
}

func (r *UserRepository) SetActive(_ context.Context, userID uuid.UUID, active bool) error {
	return r.mutate(userID, func(u *domainUser.User) { u.IsActive = active })
}

func (r *UserRepository) mutate(userID uuid.UUID, apply func(*domainUser.User)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	apply(u)
	u.UpdatedAt = time.Now()
	return nil
}
