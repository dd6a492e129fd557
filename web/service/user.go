package service

import (
	"errors"
	"strings"

	"tradedesk/database"
	"tradedesk/database/model"
	"tradedesk/logger"
	"tradedesk/util/crypto"
)

var (
	ErrUserExists        = errors.New("username or email already exists")
	ErrNoUser            = errors.New("no user found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// IsUserNotFound reports whether err means the user record is absent.
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrNoUser) || database.IsNotFound(err)
}

type UserService struct{}

// GetUser loads the bare user record.
func (s *UserService) GetUser(id uint) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserFull loads the user with trade, withdrawal and screenshot histories.
func (s *UserService) GetUserFull(id uint) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Preload("Trades").
		Preload("Withdrawals").
		Preload("Screenshots").
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password. Username and email must
// be unique across all users. The caller is not logged in afterwards.
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	db := database.GetDB()

	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	var count int64
	err := db.Model(model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser authenticates an identifier/password pair. The identifier may be
// a username or an email address. The two failure modes stay distinct, so the
// caller's messages leak identifier existence the same way the panel always
// has.
func (s *UserService) CheckUser(identifier, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ? OR email = ?", identifier, normalizeEmail(identifier)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNoUser
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// ChangePassword verifies the old password before rehashing the new one.
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if !crypto.CheckPasswordHash(user.Password, oldPassword) {
		return ErrIncorrectPassword
	}

	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}
	return db.Model(model.User{}).
		Where("id = ?", id).
		Update("password", hash).
		Error
}
