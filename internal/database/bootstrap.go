package database

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/config"
	"github.com/yiltek/catalog-backend/internal/models"
)

// BootstrapAdmin creates the configured administrator when no account with
// that email exists yet. It returns true when an account was created.
func BootstrapAdmin(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) (bool, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return false, nil
	}
	email := strings.ToLower(cfg.Email)

	_, err := users.FindByLogin(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	_, err = users.CreateUser(ctx, models.User{
		Name:     cfg.Name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logrus.WithField("email", email).Info("Bootstrap administrator created")
	return true, nil
}
