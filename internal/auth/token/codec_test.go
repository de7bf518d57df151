package token

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

func TestCodec_SignVerify(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Sign("principal_1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected non-empty token")
	}

	subject, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "principal_1" {
		t.Fatalf("expected subject principal_1, got %q", subject)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Sign("principal_1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewCodec("secret-b", time.Hour).Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Garbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Minute)

	signed, err := codec.Sign("principal_1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Valid right up to the expiry boundary.
	if _, err := codec.Verify(signed); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	codec.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := codec.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}
