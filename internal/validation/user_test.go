package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"simple", "alice", false},
		{"with digits", "alice123", false},
		{"with allowed punctuation", "a.b_c-d", false},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 100), false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 101), true},
		{"space", "alice smith", true},
		{"exclamation", "alice!", true},
		{"at sign", "alice@home", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "username", err.Field)
				assert.NotEmpty(t, err.Message)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain", "a@x.com", false},
		{"subdomain", "a@mail.x.com", false},
		{"plus tag", "a+tag@x.com", false},
		{"empty", "", true},
		{"missing at", "ax.com", true},
		{"missing domain dot", "a@xcom", true},
		{"whitespace", "a @x.com", true},
		{"double at", "a@@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "email", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Passw0rd", false},
		{"long valid", "Sup3rSecretPassword", false},
		{"too short", "Pw0", true},
		{"no uppercase", "passw0rd", true},
		{"no digit", "Password", true},
		{"empty", "", true},
		// The minimum length counts characters, not bytes
		{"eight chars with accents", "Sénha0rd", false},
		{"seven chars despite nine bytes", "Sénha0é", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "password", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}
