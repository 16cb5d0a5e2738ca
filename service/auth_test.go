package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
)

type memUserRepo struct {
	users map[string]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

type staticTokenizer struct{}

func (staticTokenizer) Generate(_ map[string]interface{}, _ time.Duration) (string, error) {
	return "token", nil
}

func (staticTokenizer) Decode(_ string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func TestAuth(t *testing.T) {
	repo := newMemUserRepo()
	auth, err := NewAuthService(repo, staticTokenizer{})
	require.NoError(t, err)

	t.Run("register rejects weak passwords", func(t *testing.T) {
		err := auth.Register("wanderer", "password")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})

	t.Run("register then sign in", func(t *testing.T) {
		require.NoError(t, auth.Register("wanderer", "correct horse battery staple"))

		user, token, err := auth.SignIn("wanderer", "correct horse battery staple")
		require.NoError(t, err)
		assert.Equal(t, "wanderer", user.Username)
		assert.Equal(t, "token", token)
	})

	t.Run("sign in with a wrong password fails", func(t *testing.T) {
		_, _, err := auth.SignIn("wanderer", "not the password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("sign in with an unknown user fails", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", "correct horse battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
