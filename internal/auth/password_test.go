package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "validpassword123",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too short",
			password: "short",
			cost:     10,
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password at minimum length",
			password: "12345678",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too long",
			password: strings.Repeat("a", 73),
			cost:     10,
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "password at maximum length",
			password: strings.Repeat("a", 72),
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "trailing whitespace rejected",
			password: "validpassword123 ",
			cost:     10,
			wantErr:  ErrPasswordWhitespace,
		},
		{
			name:     "leading whitespace rejected",
			password: "\tvalidpassword123",
			cost:     10,
			wantErr:  ErrPasswordWhitespace,
		},
		{
			name:     "interior whitespace allowed",
			password: "correct horse battery",
			cost:     10,
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, tt.cost)
			if err != tt.wantErr {
				t.Errorf("HashPassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("HashPassword() returned empty hash for valid password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correcthorsebattery", 10)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		if err := CheckPassword("correcthorsebattery", hash); err != nil {
			t.Errorf("CheckPassword() error = %v, want nil", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if err := CheckPassword("wrongpassword123", hash); err != ErrInvalidPassword {
			t.Errorf("CheckPassword() error = %v, want %v", err, ErrInvalidPassword)
		}
	})

	t.Run("garbage hash", func(t *testing.T) {
		if err := CheckPassword("correcthorsebattery", "not-a-bcrypt-hash"); err == nil {
			t.Error("CheckPassword() error = nil, want error")
		}
	})
}
