package middlewares

import (
	"context"
	"fmt"

	"campus-connect/app/server/models"

	"gorm.io/gorm"
)

// GormUserFinder is the production UserFinder backed by the relational
// store.
type GormUserFinder struct {
	DB *gorm.DB
}

var _ UserFinder = (*GormUserFinder)(nil)

func (f *GormUserFinder) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := f.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &user, nil
}
