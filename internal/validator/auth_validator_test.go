package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator()

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"ok", "alice", "pw1", nil},
		{"trimmed", "  alice  ", "pw1", nil},
		{"empty username", "   ", "pw1", ErrUsernameRequired},
		{"inner space", "al ice", "pw1", ErrUsernameSpace},
		{"long username", strings.Repeat("a", 151), "pw1", ErrUsernameTooLong},
		{"max username", strings.Repeat("a", 150), "pw1", nil},
		{"empty password", "alice", "", ErrPasswordRequired},
		{"long password", "alice", strings.Repeat("p", 73), ErrPasswordTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(tc.username, tc.password)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("alice", "pw1"))
	assert.ErrorIs(t, v.ValidateLogin("", "pw1"), ErrUsernameRequired)
	assert.ErrorIs(t, v.ValidateLogin("alice", ""), ErrPasswordRequired)
}
