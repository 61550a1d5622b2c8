package db

import (
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"github.com/jcloud/bookstore-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Book{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.Favorite{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// EnsureAdminUser creates the initial admin account when no admin exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; used for first boot
// so the stats and catalog management endpoints are reachable.
func EnsureAdminUser(email, password string) error {
	if email == "" || password == "" {
		logger.Info("Admin seed skipped: no credentials configured")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Admin user already exists, skipping seed", map[string]interface{}{
			"admin_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "관리자",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(admin).Error; err != nil {
		logger.Error("Failed to seed admin user", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"user_id": admin.ID,
		"email":   email,
	})
	return nil
}
