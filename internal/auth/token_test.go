package auth

import (
	"errors"
	"testing"
	"time"

	"wtwr-api/internal/apperr"
)

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Kind != apperr.KindUnauthenticated {
		t.Fatalf("expected unauthenticated kind, got %v", appErr.Kind)
	}
}

func TestIssueAndResolve_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := IssueToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	gotUserID, err := ResolveIdentity(tok, secret)
	if err != nil {
		t.Fatalf("ResolveIdentity error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestResolveIdentity_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := IssueToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = ResolveIdentity(tok, secret)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	assertUnauthenticated(t, err)
}

func TestResolveIdentity_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = ResolveIdentity(tok, []byte("wrong-secret"))
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
	assertUnauthenticated(t, err)
}

func TestResolveIdentity_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ResolveIdentity("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	assertUnauthenticated(t, err)
}

func TestResolveIdentity_Absent(t *testing.T) {
	t.Parallel()

	_, err := ResolveIdentity("", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for absent token, got nil")
	}
	assertUnauthenticated(t, err)
}

func TestAuthorizeOwner(t *testing.T) {
	t.Parallel()

	if err := AuthorizeOwner("u1", "u1"); err != nil {
		t.Fatalf("expected owner to be allowed, got %v", err)
	}

	err := AuthorizeOwner("u1", "u2")
	if err == nil {
		t.Fatalf("expected non-owner to be denied, got nil")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindForbidden {
		t.Fatalf("expected forbidden kind, got %v", err)
	}
}

func TestAuthorizeOwner_CaseSensitive(t *testing.T) {
	t.Parallel()

	if err := AuthorizeOwner("User-1", "user-1"); err == nil {
		t.Fatalf("expected case-differing identities to be denied")
	}
}
