package service

import (
	"testing"

	"tradedesk/database"
	"tradedesk/database/model"

	"github.com/stretchr/testify/assert"
)

func seedUserWithBalance(t *testing.T, balance float64) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.Register("alice", "alice@example.com", "secret123")
	assert.NoError(t, err)
	err = database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("balance", balance).
		Error
	assert.NoError(t, err)
	user.Balance = balance
	return user
}

func TestWithdrawalRejectedWhenOverBalance(t *testing.T) {
	setup()
	defer teardown()

	user := seedUserWithBalance(t, 50)
	service := WithdrawalService{}

	_, err := service.RequestWithdrawal(user.Id, 100, "bc1qxyz", "BTC")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	userService := UserService{}
	after, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, after.Balance)

	withdrawals, err := service.ListForUser(user.Id)
	assert.NoError(t, err)
	assert.Empty(t, withdrawals)
}

func TestWithdrawalDebitsExactly(t *testing.T) {
	setup()
	defer teardown()

	user := seedUserWithBalance(t, 200)
	service := WithdrawalService{}

	w, err := service.RequestWithdrawal(user.Id, 75.5, "bc1qxyz", "BTC")
	assert.NoError(t, err)
	assert.Equal(t, model.WithdrawalPending, w.Status)
	assert.NotEmpty(t, w.Id)

	userService := UserService{}
	after, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 124.5, after.Balance)

	withdrawals, err := service.ListForUser(user.Id)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
	assert.Equal(t, 75.5, withdrawals[0].Amount)
}

func TestApproveWithdrawalTouchesOnlyThatEntry(t *testing.T) {
	setup()
	defer teardown()

	user := seedUserWithBalance(t, 300)
	service := WithdrawalService{}

	first, err := service.RequestWithdrawal(user.Id, 100, "bc1qfirst", "BTC")
	assert.NoError(t, err)
	second, err := service.RequestWithdrawal(user.Id, 50, "bc1qsecond", "BTC")
	assert.NoError(t, err)

	adminService := UserAdminService{}
	err = adminService.ApproveWithdrawal(user.Id, first.Id)
	assert.NoError(t, err)

	withdrawals, err := service.ListForUser(user.Id)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 2)
	for _, w := range withdrawals {
		switch w.Id {
		case first.Id:
			assert.Equal(t, model.WithdrawalApproved, w.Status)
		case second.Id:
			assert.Equal(t, model.WithdrawalPending, w.Status)
		}
	}

	// Approved entries never refund the balance.
	userService := UserService{}
	after, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, after.Balance)
}

func TestApproveWithdrawalUnknownId(t *testing.T) {
	setup()
	defer teardown()

	user := seedUserWithBalance(t, 100)

	adminService := UserAdminService{}
	err := adminService.ApproveWithdrawal(user.Id, "no-such-id")
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}
