package password_test

import (
	"strings"
	"testing"

	"spacy/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "ascii", plain: "validPassword123"},
		{name: "unicode", plain: "пароль123"},
		{name: "exactly max length", plain: strings.Repeat("a", password.MaxLength)},
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", plain: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.plain)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hashed, "$2a$"))
			assert.NoError(t, password.Verify(tt.plain, hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("secret123")
	require.NoError(t, err)

	second, err := password.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("testPassword123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plain     string
		hashed    string
		wantErr   error
		wantOther bool
	}{
		{name: "match", plain: "testPassword123", hashed: hashed},
		{name: "mismatch", plain: "wrongPassword", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "testPassword123", hashed: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", plain: "testPassword123", hashed: "not-a-hash", wantOther: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantOther:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
