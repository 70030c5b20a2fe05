package service

import (
	"testing"
)

func TestPasswordServiceHashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("secret-password-1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret-password-1" {
		t.Fatal("hash must not equal the plain password")
	}

	if !svc.Verify("secret-password-1", hash) {
		t.Error("expected correct password to verify")
	}
	if svc.Verify("wrong-password", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPasswordServiceHashesDiffer(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// bcrypt salts every digest
	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestPasswordServiceVerifyMalformedDigest(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-digest"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if svc.Verify("anything", tt.digest) {
				t.Error("expected malformed digest to fail verification")
			}
		})
	}
}
