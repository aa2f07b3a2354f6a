package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// UserUpdate is the explicit field set accepted by UpdateUser. An empty
// HashedPassword leaves the stored credential unchanged.
type UserUpdate struct {
	Name           string
	Email          string
	HashedPassword string
	Role           model.Role
}

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if !u.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "must be admin or employee"}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "user", Field: "email", Value: u.Email}
		}
		return tx.Create(u).Error
	})
	return wrapTxErr("create user", err)
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user"}
		}
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) ListAdmins(ctx context.Context) ([]model.User, error) {
	var admins []model.User
	if err := s.db.WithContext(ctx).Where("role = ?", model.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *gormStore) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*model.User, error) {
	if !upd.Role.Valid() {
		return nil, &ValidationError{Field: "role", Reason: "must be admin or employee"}
	}

	var updated model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: id}
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.User{}).Where("email = ? AND id <> ?", upd.Email, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "user", Field: "email", Value: upd.Email}
		}

		u.Name = upd.Name
		u.Email = upd.Email
		u.Role = upd.Role
		if upd.HashedPassword != "" {
			u.HashedPassword = upd.HashedPassword
		}

		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, wrapTxErr("update user", err)
	}
	return &updated, nil
}

// DeleteUser removes the user and their inspections in one transaction.
func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: id}
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Inspection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	return wrapTxErr("delete user", err)
}
