package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/account-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserStore struct {
	mu sync.Mutex

	byID map[string]domain.User

	// injected errors (if set, method returns error)
	findErr   error
	insertErr error
	updateErr error
	listErr   error

	// record calls
	inserted []domain.User
	updated  []domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[string]domain.User{}}
}

func (f *fakeUserStore) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUserStore) find(match func(domain.User) bool) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.User{}, f.findErr
	}
	for _, u := range f.byID {
		if match(u) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Email == email })
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Username == username })
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	return f.find(func(u domain.User) bool { return u.ID == id })
}

func (f *fakeUserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return domain.User{}, f.insertErr
	}
	f.byID[u.ID] = u
	f.inserted = append(f.inserted, u)
	return u, nil
}

func (f *fakeUserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	f.byID[u.ID] = u
	f.updated = append(f.updated, u)
	return u, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

type fakeHasher struct {
	mu sync.Mutex

	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error

	hashCalls int
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	h.mu.Lock()
	h.hashCalls++
	h.mu.Unlock()

	if h.hashFn != nil {
		return h.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (h *fakeHasher) Compare(hash, pw string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	issueErr error
	issued   []string
}

func (f *fakeIssuer) Issue(subjectID string) (Token, error) {
	if f.issueErr != nil {
		return Token{}, f.issueErr
	}
	f.issued = append(f.issued, subjectID)
	return Token{
		Value:     "tok:" + subjectID,
		ExpiresIn: time.Hour,
		ExpiresAt: time.Unix(0, 0).Add(time.Hour),
	}, nil
}

func (f *fakeIssuer) Verify(raw string) (TokenClaims, error) {
	const prefix = "tok:"
	if len(raw) <= len(prefix) || raw[:len(prefix)] != prefix {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{Subject: raw[len(prefix):]}, nil
}

type fakePublisher struct {
	mu sync.Mutex

	err        error
	registered []UserRegisteredEvent
	updated    []UserUpdatedEvent
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, evt)
	return nil
}

func (p *fakePublisher) PublishUserUpdated(ctx context.Context, evt UserUpdatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.updated = append(p.updated, evt)
	return nil
}

/*
Service builder
*/

type svcDeps struct {
	users  *fakeUserStore
	hasher *fakeHasher
	issuer *fakeIssuer
	pub    *fakePublisher
	audits *[]auditEntry
}

func newSvcForTest(t *testing.T) (*Service, svcDeps) {
	t.Helper()

	d := svcDeps{
		users:  newFakeUserStore(),
		hasher: &fakeHasher{},
		issuer: &fakeIssuer{},
		pub:    &fakePublisher{},
		audits: &[]auditEntry{},
	}

	audits := d.audits
	svc := NewService(d.users, d.hasher, d.issuer, d.pub, Config{}).
		WithAudit(func(action string, fields map[string]string) {
			cp := map[string]string{}
			for k, v := range fields {
				cp[k] = v
			}
			*audits = append(*audits, auditEntry{action: action, fields: cp})
		})
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	return svc, d
}

/*
Small assertions
*/

func requireDomainCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	got := domainCode(err)
	if got != wantCode {
		t.Fatalf("expected domain code %q, got %q (err=%v)", wantCode, got, err)
	}
}

func requireKind(t *testing.T, err error, want domain.ErrKind) {
	t.Helper()
	if got := domain.KindOf(err); got != want {
		t.Fatalf("expected kind %q, got %q (err=%v)", want, got, err)
	}
}

func lastAudit(audits *[]auditEntry) (auditEntry, bool) {
	if audits == nil || len(*audits) == 0 {
		return auditEntry{}, false
	}
	return (*audits)[len(*audits)-1], true
}

/*
Fixtures
*/

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:        "Hazem_H",
		Email:           "Hazem@Example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		FirstName:       "hazem",
		LastName:        "HASSAN",
		MobileNumber:    "+201234567890",
		Gender:          "Male",
	}
}

func storedUser() domain.User {
	return domain.User{
		ID:           "u1",
		Username:     "hazem_h",
		Email:        "hazem@example.com",
		PasswordHash: "hash:Passw0rd!",
		FirstName:    "Hazem",
		LastName:     "Hassan",
		MobileNumber: "+201234567890",
		Gender:       "male",
	}
}
