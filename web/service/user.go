package service

import (
	"errors"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/logger"
	"condo-panel/util/crypto"

	"github.com/xlzd/gotp"
	"gorm.io/gorm"
)

// Identity store failures surfaced to the controllers.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrEmailInUse     = errors.New("email in use by another user")
)

// UserService is the identity store: registration, lookup and credential
// verification for residents and the sindico.
type UserService struct {
	settingService SettingService
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user, id).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetSindico returns the account currently holding the sindico role.
func (s *UserService) GetSindico() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("role = ?", model.RoleSindico).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAllUsers() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	err := db.Model(model.User{}).
		Order("id asc").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Register creates a resident account. The raw password is hashed before
// anything touches the database; a duplicate email aborts with no write.
func (s *UserService) Register(email, rawPassword, name, phone, block, apartment string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := crypto.HashPasswordAsBcrypt(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleMorador,
		Name:         name,
		Phone:        phone,
		Block:        block,
		Apartment:    apartment,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies login credentials and, when enabled for the sindico,
// the TOTP code. Returns nil on any failure so callers cannot distinguish an
// unknown email from a wrong password.
func (s *UserService) CheckUser(email, password, twoFactorCode string) *model.User {
	db := database.GetDB()

	user := &model.User{}

	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}

	if user.Role == model.RoleSindico {
		twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
		if err != nil {
			logger.Warning("check two factor err:", err)
			return nil
		}

		if twoFactorEnable {
			twoFactorToken, err := s.settingService.GetTwoFactorToken()
			if err != nil {
				logger.Warning("check two factor token err:", err)
				return nil
			}

			if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
				return nil
			}
		}
	}

	return user
}

// UpdateProfile edits a user's own account (editar_perfil). Email uniqueness
// is re-checked excluding the user itself; an empty newPassword keeps the
// current credential.
func (s *UserService) UpdateProfile(id int, email, name, phone, block, apartment, newPassword string) error {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("email = ? AND id != ?", email, id).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailInUse
	}

	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return err
	}

	user.Email = email
	user.Name = name
	user.Phone = phone
	user.Block = block
	user.Apartment = apartment

	if newPassword != "" {
		hash, err := crypto.HashPasswordAsBcrypt(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	return db.Save(user).Error
}

// UpdateFirstSindico resets the sindico credentials from the CLI.
func (s *UserService) UpdateFirstSindico(email string, password string) error {
	if email == "" {
		return errors.New("email can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).Where("role = ?", model.RoleSindico).First(user).Error
	if database.IsNotFound(err) {
		user = &model.User{
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleSindico,
		}
		return db.Create(user).Error
	} else if err != nil {
		return err
	}
	user.Email = email
	user.PasswordHash = hash
	return db.Save(user).Error
}
