package service

import (
	"time"

	"tradedesk/database"
	"tradedesk/database/model"

	"gorm.io/gorm"
)

type UserAdminService struct {
	userService UserService
}

// ListUsers returns every account in creation order.
func (s *UserAdminService) ListUsers() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	if err := db.Model(model.User{}).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserDetail loads one account with its full histories plus aggregate
// stats for the admin detail page.
func (s *UserAdminService) GetUserDetail(id uint) (*model.User, UserStats, error) {
	user, err := s.userService.GetUserFull(id)
	if err != nil {
		return nil, UserStats{}, err
	}
	return user, ComputeUserStats(user.Trades, user.Withdrawals), nil
}

// ListUsersWithScreenshots returns the accounts that have at least one
// uploaded deposit screenshot, histories included.
func (s *UserAdminService) ListUsersWithScreenshots() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	err := db.Model(model.User{}).
		Preload("Screenshots").
		Where("id IN (?)", db.Model(model.Screenshot{}).Distinct("user_id")).
		Order("id ASC").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AdjustBalance applies a signed delta as a single atomic increment.
func (s *UserAdminService) AdjustBalance(id uint, delta float64) error {
	db := database.GetDB()

	result := db.Model(model.User{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoUser
	}
	return nil
}

// AddTrade appends a manual trade dated now and adjusts the balance by
// profit minus loss in the same transaction.
func (s *UserAdminService) AddTrade(userId uint, tradeType string, profit, loss float64) (*model.Trade, error) {
	db := database.GetDB()

	trade := &model.Trade{
		UserId: userId,
		Type:   tradeType,
		Profit: profit,
		Loss:   loss,
		Date:   time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model.User{}).
			Where("id = ?", userId).
			Update("balance", gorm.Expr("balance + ?", profit-loss))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoUser
		}
		return tx.Create(trade).Error
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// ApproveWithdrawal flips exactly one pending entry to approved. The entry is
// addressed by its id, never by list position. No rejection or refund path
// exists.
func (s *UserAdminService) ApproveWithdrawal(userId uint, withdrawalId string) error {
	db := database.GetDB()

	result := db.Model(model.Withdrawal{}).
		Where("id = ? AND user_id = ?", withdrawalId, userId).
		Update("status", model.WithdrawalApproved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWithdrawalNotFound
	}
	return nil
}
