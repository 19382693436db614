package config

import (
	"strings"
	"testing"
)

func TestPasswordConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "default cost", cost: DefaultBcryptCost},
		{name: "minimum cost", cost: MinBcryptCost},
		{name: "maximum cost", cost: MaxBcryptCost},
		{name: "cost too low", cost: 9, wantErr: true},
		{name: "cost too high", cost: 15, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &PasswordConfig{BcryptCost: tt.cost}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordConfig_HashPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	password := "test-password-123"
	hash, err := cfg.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() returned %q", hash)
	}

	// Hash should be different each time (bcrypt includes salt)
	hash2, err := cfg.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes for same password (salt)")
	}
}

func TestPasswordConfig_VerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !cfg.VerifyPassword("secret1", hash) {
		t.Error("VerifyPassword() should return true for correct password")
	}
	if cfg.VerifyPassword("secret2", hash) {
		t.Error("VerifyPassword() should return false for incorrect password")
	}
	if cfg.VerifyPassword("secret1", "not-a-hash") {
		t.Error("VerifyPassword() should return false for a malformed hash")
	}
}

func TestPasswordConfig_VerifyPassword_WithPepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-a"}

	hash, err := peppered.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !peppered.VerifyPassword("secret1", hash) {
		t.Error("VerifyPassword() should accept the password with the same pepper")
	}

	rotated := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-b"}
	if rotated.VerifyPassword("secret1", hash) {
		t.Error("VerifyPassword() should reject the password under a different pepper")
	}

	plain := &PasswordConfig{BcryptCost: MinBcryptCost}
	if plain.VerifyPassword("secret1", hash) {
		t.Error("VerifyPassword() should reject the password without the pepper")
	}
}

func TestPasswordConfig_PasswordExceeding72Bytes(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	// bcrypt rejects inputs over 72 bytes
	_, err := cfg.HashPassword(strings.Repeat("a", 73))
	if err == nil {
		t.Error("HashPassword() should fail for passwords over 72 bytes")
	}
}
