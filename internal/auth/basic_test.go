package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestNewBasicAuthenticator(t *testing.T) {
	validHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	tests := []struct {
		name    string
		config  string
		wantErr bool
	}{
		{
			name:    "single user",
			config:  "alice:" + validHash,
			wantErr: false,
		},
		{
			name:    "multiple users",
			config:  "alice:" + validHash + ",bob:" + validHash,
			wantErr: false,
		},
		{
			name:    "empty config",
			config:  "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			config:  "   ",
			wantErr: true,
		},
		{
			name:    "missing colon",
			config:  "alicehash",
			wantErr: true,
		},
		{
			name:    "empty username",
			config:  ":" + validHash,
			wantErr: true,
		},
		{
			name:    "empty hash",
			config:  "alice:",
			wantErr: true,
		},
		{
			name:    "only commas",
			config:  ",,,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			a, err := NewBasicAuthenticator(tt.config)

			// Assert
			if tt.wantErr {
				if err == nil {
					t.Error("NewBasicAuthenticator() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBasicAuthenticator() unexpected error: %v", err)
			}
			if a == nil {
				t.Fatal("NewBasicAuthenticator() returned nil")
			}
		})
	}
}

func TestBasicAuthenticator_Authenticate(t *testing.T) {
	// Arrange
	hash := mustHash(t, "secret")
	a, err := NewBasicAuthenticator("alice:" + hash)
	if err != nil {
		t.Fatalf("NewBasicAuthenticator() unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		username    string
		password    string
		noCreds     bool
		wantErr     error
		wantSubject string
	}{
		{
			name:        "valid credentials",
			username:    "alice",
			password:    "secret",
			wantSubject: "alice",
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "mallory",
			password: "secret",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:    "no credentials",
			noCreds: true,
			wantErr: ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
			if !tt.noCreds {
				req.SetBasicAuth(tt.username, tt.password)
			}

			// Act
			info, err := a.Authenticate(req)

			// Assert
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			if info.Subject != tt.wantSubject {
				t.Errorf("Subject = %s, want %s", info.Subject, tt.wantSubject)
			}
			if info.Method != AuthMethodBasic {
				t.Errorf("Method = %s, want %s", info.Method, AuthMethodBasic)
			}
		})
	}
}

func TestBasicAuthenticator_Method(t *testing.T) {
	// Arrange
	a, err := NewBasicAuthenticator("alice:" + mustHash(t, "secret"))
	if err != nil {
		t.Fatalf("NewBasicAuthenticator() unexpected error: %v", err)
	}

	// Act & Assert
	if a.Method() != AuthMethodBasic {
		t.Errorf("Method() = %s, want %s", a.Method(), AuthMethodBasic)
	}
}
