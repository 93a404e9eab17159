package service

import (
	"errors"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/logger"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotSindico   = errors.New("user is not the sindico")
)

// RoleService owns the single-manager invariant. Both transitions run inside
// one write transaction; sqlite serializes writers, so two concurrent
// promotions cannot each observe a stale manager row.
type RoleService struct{}

// Promote makes userId the sindico. The current sindico, when present and
// different from the target, is demoted in the same transaction: after commit
// exactly one user holds the role.
func (s *RoleService) Promote(userId int) (*model.User, error) {
	db := database.GetDB()

	target := &model.User{}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(target, userId).Error; err != nil {
			if database.IsNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		current := &model.User{}
		err := tx.Where("role = ?", model.RoleSindico).First(current).Error
		if err != nil && !database.IsNotFound(err) {
			return err
		}
		if err == nil && current.Id != target.Id {
			current.Role = model.RoleMorador
			if err := tx.Save(current).Error; err != nil {
				return err
			}
		}

		target.Role = model.RoleSindico
		return tx.Save(target).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("%s promoted to sindico", target.Email)
	return target, nil
}

// Demote sets userId back to morador. Only legal when the user currently
// holds the sindico role; otherwise nothing is written and the failure is
// reported to the caller.
func (s *RoleService) Demote(userId int) (*model.User, error) {
	db := database.GetDB()

	target := &model.User{}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(target, userId).Error; err != nil {
			if database.IsNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		if target.Role != model.RoleSindico {
			return ErrNotSindico
		}

		target.Role = model.RoleMorador
		return tx.Save(target).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("%s demoted to morador", target.Email)
	return target, nil
}
