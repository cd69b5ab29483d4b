package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/account-service/internal/domain"
)

// UserStore keeps users in process memory. Email and username indexes enforce uniqueness.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[string]domain.User
	byEmail    map[string]string // email -> userID
	byUsername map[string]string // username -> userID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return domain.User{}, domain.ErrUsernameAlreadyExists()
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return u, nil
}

// Update replaces the stored record with the same ID. Email and username are re-indexed
// when they change, subject to the same uniqueness rules as Insert.
func (r *UserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if id, exists := r.byEmail[u.Email]; exists && id != u.ID {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if id, exists := r.byUsername[u.Username]; exists && id != u.ID {
		return domain.User{}, domain.ErrUsernameAlreadyExists()
	}

	delete(r.byEmail, old.Email)
	delete(r.byUsername, old.Username)
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return u, nil
}

// List returns users in creation order.
func (r *UserStore) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
