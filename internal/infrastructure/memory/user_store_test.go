package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/account-service/internal/domain"
)

func user(id, email, username string, created time.Time) domain.User {
	return domain.User{ID: id, Email: email, Username: username, PasswordHash: "h", CreatedAt: created}
}

func TestUserStore_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u, err := s.Insert(ctx, user("u1", "a@b.com", "alice", time.Now()))
	require.NoError(t, err)

	got, err := s.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got, err = s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	got, err = s.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUserStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	_, err := s.FindByEmail(ctx, "x@y.com")
	assert.True(t, domain.Is(err, "user_not_found"))
	_, err = s.FindByUsername(ctx, "x")
	assert.True(t, domain.Is(err, "user_not_found"))
	_, err = s.FindByID(ctx, "x")
	assert.True(t, domain.Is(err, "user_not_found"))
	_, err = s.Update(ctx, user("x", "x@y.com", "x", time.Now()))
	assert.True(t, domain.Is(err, "user_not_found"))
}

func TestUserStore_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	_, err := s.Insert(ctx, user("u1", "a@b.com", "alice", time.Now()))
	require.NoError(t, err)

	_, err = s.Insert(ctx, user("u2", "a@b.com", "bob", time.Now()))
	assert.True(t, domain.Is(err, "email_already_exists"))

	_, err = s.Insert(ctx, user("u2", "b@b.com", "alice", time.Now()))
	assert.True(t, domain.Is(err, "username_already_exists"))

	_, err = s.Insert(ctx, user("", "c@b.com", "carol", time.Now()))
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestUserStore_UpdateReindexes(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	_, err := s.Insert(ctx, user("u1", "a@b.com", "alice", time.Now()))
	require.NoError(t, err)
	_, err = s.Insert(ctx, user("u2", "b@b.com", "bob", time.Now()))
	require.NoError(t, err)

	upd := user("u1", "new@b.com", "alice", time.Now())
	upd.FirstName = "Alice"
	_, err = s.Update(ctx, upd)
	require.NoError(t, err)

	_, err = s.FindByEmail(ctx, "a@b.com")
	assert.True(t, domain.Is(err, "user_not_found"))
	got, err := s.FindByEmail(ctx, "new@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)

	_, err = s.Update(ctx, user("u1", "b@b.com", "alice", time.Now()))
	assert.True(t, domain.Is(err, "email_already_exists"))
}

func TestUserStore_ListInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _ = s.Insert(ctx, user("u2", "b@b.com", "bob", base.Add(time.Minute)))
	_, _ = s.Insert(ctx, user("u1", "a@b.com", "alice", base))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u1", list[0].ID)
	assert.Equal(t, "u2", list[1].ID)
}

func TestUserStore_ConcurrentInsertSameEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			if _, err := s.Insert(ctx, user(id, "same@b.com", "user_"+id, time.Now())); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}
