package service

import (
	"errors"
	"fmt"
	"time"

	"tradedesk/config"
	"tradedesk/database"
	"tradedesk/database/model"
	"tradedesk/logger"
	"tradedesk/util/crypto"
	"tradedesk/util/mail"
	"tradedesk/util/random"
)

const (
	resetTokenLength = 40
	resetTokenTTL    = time.Hour
)

var ErrInvalidResetToken = errors.New("invalid or expired token")

type AuthService struct{}

// RequestPasswordReset issues a fresh token with a one hour expiry and mails
// the reset link. Issuing a new token overwrites any stale one.
func (s *AuthService) RequestPasswordReset(email string) error {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", normalizeEmail(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return ErrNoUser
	} else if err != nil {
		return err
	}

	token := random.Seq(resetTokenLength)
	expiry := time.Now().Add(resetTokenTTL)
	err = db.Model(model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{"reset_token": token, "reset_token_expiry": expiry}).
		Error
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/auth/reset/%s", config.GetBaseURL(), token)
	body := fmt.Sprintf(`<h3>Hello %s,</h3>
<p>You requested to reset your password.</p>
<p><a href="%s">Click here to reset your password</a></p>
<small>If you didn't request this, ignore this email.</small>`, user.Username, resetURL)

	if err := mail.Send(user.Email, "Password Reset Request", body); err != nil {
		logger.Warning("send reset mail failed:", err)
		return err
	}
	return nil
}

// GetUserByResetToken resolves a token to its user. A token is valid only
// while its expiry is strictly after now.
func (s *AuthService) GetUserByResetToken(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidResetToken
	}
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidResetToken
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword redeems a valid token: the password is rehashed and both the
// token and its expiry are cleared, so reuse fails.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.GetUserByResetToken(token)
	if err != nil {
		return err
	}

	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}

	db := database.GetDB()
	return db.Model(model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{
			"password":           hash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).
		Error
}

// InitAdmin creates the bootstrap admin account from the configured
// credentials. Idempotent: if a user with the configured admin email already
// exists nothing is created.
func (s *AuthService) InitAdmin() (created bool, err error) {
	username := config.GetAdminUsername()
	email := config.GetAdminEmail()
	password := config.GetAdminPassword()
	if username == "" || email == "" || password == "" {
		return false, errors.New("admin credentials are not configured")
	}

	db := database.GetDB()
	var count int64
	err = db.Model(model.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return false, err
	}
	admin := &model.User{
		Username: username,
		Email:    normalizeEmail(email),
		Password: hash,
		Role:     model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return false, err
	}
	logger.Infof("bootstrap admin %s created", username)
	return true, nil
}
