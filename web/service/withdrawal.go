package service

import (
	"errors"
	"time"

	"tradedesk/database"
	"tradedesk/database/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
)

type WithdrawalService struct{}

// RequestWithdrawal appends a pending entry and debits the balance. The
// balance check and the debit are one conditional update, so two concurrent
// requests cannot overdraw the same account.
func (s *WithdrawalService) RequestWithdrawal(userId uint, amount float64, wallet, currency string) (*model.Withdrawal, error) {
	db := database.GetDB()

	withdrawal := &model.Withdrawal{
		Id:       uuid.NewString(),
		UserId:   userId,
		Amount:   amount,
		Wallet:   wallet,
		Currency: currency,
		Status:   model.WithdrawalPending,
		Date:     time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model.User{}).
			Where("id = ? AND balance >= ?", userId, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientBalance
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// ListForUser returns the user's withdrawals in request order.
func (s *WithdrawalService) ListForUser(userId uint) ([]model.Withdrawal, error) {
	db := database.GetDB()

	var withdrawals []model.Withdrawal
	err := db.Model(model.Withdrawal{}).
		Where("user_id = ?", userId).
		Order("date ASC").
		Find(&withdrawals).
		Error
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}
