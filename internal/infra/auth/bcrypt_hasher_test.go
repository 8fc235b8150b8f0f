package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"upkiip/config"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/errors"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret-pass!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass!", hash)

	assert.True(t, hasher.Check("s3cret-pass!", hash))
	assert.False(t, hasher.Check("wrong-pass!", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-password!")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-password!", first))
	assert.True(t, hasher.Check("same-password!", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("anything!", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("anything!", ""))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "longenough!", wantErr: false},
		{name: "too short", password: "ab!", wantErr: true},
		{name: "no special character", password: "longenough1", wantErr: true},
		{name: "too long", password: strings.Repeat("a", 80) + "!", wantErr: true},
		{name: "unicode special character", password: "longenough€", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBcryptHasher_ConfigOverrides(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:      12,
			RequireSpecial: false,
			MaxLength:      72,
		},
	}

	hasher := NewBcryptHasher(cfg)

	assert.Error(t, hasher.ValidatePasswordStrength("elevenchars"))
	assert.NoError(t, hasher.ValidatePasswordStrength("twelvecharsok"))
}
