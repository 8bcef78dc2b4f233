package accounts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/session"
)

// Directory verifies credentials against stored bcrypt hashes. It replaces
// session.Simulated when an accounts database is configured.
type Directory struct {
	DB   *gorm.DB
	Cost int
}

func (d *Directory) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	l := logging.FromContext(ctx).With("svc", "accounts.authenticate")

	var account models.Account
	if err := d.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, session.ErrInvalidCredentials
		}
		l.Error("authenticate_failed", "reason", "cannot load account", "error", err)
		return models.User{}, fmt.Errorf("load account: %w", err)
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return models.User{}, session.ErrInvalidCredentials
	}
	return account.User(), nil
}

func (d *Directory) Register(ctx context.Context, name, email, password string) (models.User, error) {
	l := logging.FromContext(ctx).With("svc", "accounts.register")

	pwHash, err := hash.HashPassword(password, d.Cost)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	tx := d.DB.WithContext(ctx).Where("email = ?", email).FirstOrCreate(&account)
	if tx.Error != nil {
		l.Error("register_failed", "reason", "cannot create account", "error", tx.Error)
		return models.User{}, fmt.Errorf("create account: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.User{}, session.ErrConflict
	}
	return account.User(), nil
}
