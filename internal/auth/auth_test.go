package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestMintAndParse(t *testing.T) {
	p := Principal{ID: 42, Email: "ayse@example.com", IsPremium: true}

	tok, err := MintToken(p, "secret", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	claims, err := ParseClaims(tok, "secret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}
	if got := claims.Principal(); got != p {
		t.Errorf("Principal() = %+v, want %+v", got, p)
	}
}

func TestParseClaimsRejects(t *testing.T) {
	p := Principal{ID: 1, Email: "a@b.c"}
	valid, _ := MintToken(p, "secret", time.Hour, time.Now())
	expired, _ := MintToken(p, "secret", time.Hour, time.Now().Add(-2*time.Hour))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty", "", "secret"},
		{"garbage", "not-a-jwt", "secret"},
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseClaims(tt.token, tt.secret); err == nil {
				t.Error("ParseClaims() expected error")
			}
		})
	}

	if _, err := ParseClaims("", "secret"); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token error = %v, want ErrMissingToken", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword(wrong) = %v, want ErrInvalidPassword", err)
	}
}
