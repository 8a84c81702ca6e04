package dao

import (
	"context"
	"errors"

	"go-userapi/internal/domain/model"

	"gorm.io/gorm"
)

// UserDAO is the data access object for user records.
type UserDAO struct {
	DB *gorm.DB
}

// NewUserDAO creates a new UserDAO.
func NewUserDAO(db *gorm.DB) *UserDAO { return &UserDAO{DB: db} }

// FindByID finds a user by primary id. Missing record returns (nil, nil).
func (d *UserDAO) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindAll returns every stored user in store-native order.
func (d *UserDAO) FindAll(ctx context.Context) ([]model.User, error) {
	var list []model.User
	if err := d.DB.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save inserts the record when ID is zero, otherwise updates it in place.
// created_at is write-once (<-:create on the model), so updates never touch it.
func (d *UserDAO) Save(ctx context.Context, u *model.User) error {
	return d.DB.WithContext(ctx).Save(u).Error
}

// Delete physical delete by id.
func (d *UserDAO) Delete(ctx context.Context, id int64) error {
	return d.DB.WithContext(ctx).Delete(&model.User{}, id).Error
}

// ExistsByID reports whether a record with the given id exists.
func (d *UserDAO) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsByEmail reports whether any record carries the email. Match is
// case-sensitive, as stored.
func (d *UserDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
