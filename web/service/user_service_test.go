package service

import (
	"testing"

	"tradedesk/database"
	"tradedesk/database/model"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRejectsDuplicates(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.Register("alice", "Alice@Example.com", "secret123")
	assert.NoError(t, err)

	// Same username, different email
	_, err = service.Register("alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserExists)

	// Same email (case-insensitive), different username
	_, err = service.Register("bob", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserExists)

	var count int64
	database.GetDB().Model(model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("alice", "  Alice@Example.COM ", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestCheckUserByUsernameOrEmail(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, err := service.Register("alice", "alice@example.com", "secret123")
	assert.NoError(t, err)

	user, err := service.CheckUser("alice", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	user, err = service.CheckUser("alice@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.CheckUser("nobody", "secret123")
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = service.CheckUser("alice", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestChangePassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	user, err := service.Register("alice", "alice@example.com", "secret123")
	assert.NoError(t, err)

	err = service.ChangePassword(user.Id, "wrong", "newpass456")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = service.ChangePassword(user.Id, "secret123", "newpass456")
	assert.NoError(t, err)

	_, err = service.CheckUser("alice", "newpass456")
	assert.NoError(t, err)
	_, err = service.CheckUser("alice", "secret123")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}
