package account

import (
	"context"
	"errors"
	"testing"

	"github.com/baechuer/account-service/internal/domain"
)

func validUpdateInput() UpdateInput {
	return UpdateInput{
		Email:        "hazem@example.com",
		FirstName:    "HAZEM",
		LastName:     "el-sayed",
		MobileNumber: "+201111111111",
		Gender:       "OTHER",
	}
}

func TestUpdate_MissingField(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)

	in := validUpdateInput()
	in.Gender = ""

	_, err := svc.Update(context.Background(), in)
	requireDomainCode(t, err, "missing_field")

	var de *domain.Error
	if !errors.As(err, &de) || de.Meta["field"] != "gender" {
		t.Fatalf("expected field=gender, got %v", err)
	}
	if len(d.users.updated) != 0 {
		t.Fatalf("expected no update")
	}
}

func TestUpdate_UnknownEmail_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newSvcForTest(t)

	_, err := svc.Update(context.Background(), validUpdateInput())
	requireDomainCode(t, err, "user_not_found")
	requireKind(t, err, domain.KindNotFound)
}

func TestUpdate_InvalidProfile_ValidationFailed(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())

	in := validUpdateInput()
	in.Gender = "robot"

	_, err := svc.Update(context.Background(), in)
	requireDomainCode(t, err, "validation_failed")
}

func TestUpdate_OverwritesProfile_KeepsPassword(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())

	got, err := svc.Update(context.Background(), validUpdateInput())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}
	if d.hasher.hashCalls != 0 {
		t.Fatalf("expected no rehash without password")
	}

	stored := d.users.byID["u1"]
	if stored.FirstName != "Hazem" || stored.LastName != "El-sayed" {
		t.Fatalf("expected formatted names, got %q %q", stored.FirstName, stored.LastName)
	}
	if stored.Gender != "other" || stored.MobileNumber != "+201111111111" {
		t.Fatalf("unexpected profile %+v", stored)
	}
	if stored.PasswordHash != "hash:Passw0rd!" {
		t.Fatalf("expected password untouched, got %q", stored.PasswordHash)
	}
	if len(d.pub.updated) != 1 || d.pub.updated[0].PasswordChanged {
		t.Fatalf("expected one update event without password change, got %+v", d.pub.updated)
	}
}

func TestUpdate_NewPassword_Rehashes(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())

	in := validUpdateInput()
	in.Password = "N3wPassword!"

	if _, err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if d.users.byID["u1"].PasswordHash != "hash:N3wPassword!" {
		t.Fatalf("expected rehash, got %q", d.users.byID["u1"].PasswordHash)
	}
	if !d.pub.updated[0].PasswordChanged {
		t.Fatalf("expected password_changed event")
	}
}

func TestUpdate_PasswordEqualToStoredValue_NoRehash(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())

	in := validUpdateInput()
	in.Password = "hash:Passw0rd!"

	if _, err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if d.hasher.hashCalls != 0 {
		t.Fatalf("expected no rehash")
	}
}

func TestUpdate_WeakNewPassword_ValidationFailed(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())

	in := validUpdateInput()
	in.Password = "weak"

	_, err := svc.Update(context.Background(), in)
	requireDomainCode(t, err, "validation_failed")
	if len(d.users.updated) != 0 {
		t.Fatalf("expected no update")
	}
}

func TestUpdate_StoreFailure_Propagates(t *testing.T) {
	t.Parallel()

	svc, d := newSvcForTest(t)
	d.users.put(storedUser())
	d.users.updateErr = domain.ErrStorageUnavailable(errors.New("down"))

	_, err := svc.Update(context.Background(), validUpdateInput())
	requireDomainCode(t, err, "storage_unavailable")
	if len(d.pub.updated) != 0 {
		t.Fatalf("expected no event")
	}
}
