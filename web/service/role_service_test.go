package service

import (
	"testing"

	"condo-panel/database"
	"condo-panel/database/model"

	"github.com/stretchr/testify/assert"
)

func countSindicos(t *testing.T) int64 {
	t.Helper()
	var count int64
	err := database.GetDB().Model(model.User{}).
		Where("role = ?", model.RoleSindico).
		Count(&count).Error
	assert.NoError(t, err)
	return count
}

func TestPromoteSwapsSindico(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	roleService := RoleService{}

	morador, err := userService.Register("carlos@example.com", "segredo123", "Carlos", "", "", "")
	assert.NoError(t, err)

	seeded, err := userService.GetSindico()
	assert.NoError(t, err)

	promoted, err := roleService.Promote(morador.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleSindico, promoted.Role)

	// the previous sindico is demoted in the same transaction
	previous, err := userService.GetUserById(seeded.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMorador, previous.Role)

	assert.EqualValues(t, 1, countSindicos(t))
}

func TestPromoteCurrentSindicoIsNoop(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	roleService := RoleService{}

	seeded, err := userService.GetSindico()
	assert.NoError(t, err)

	promoted, err := roleService.Promote(seeded.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleSindico, promoted.Role)
	assert.EqualValues(t, 1, countSindicos(t))
}

func TestPromoteUnknownUser(t *testing.T) {
	setup()
	defer teardown()

	roleService := RoleService{}

	_, err := roleService.Promote(9999)
	assert.Equal(t, ErrUserNotFound, err)
	assert.EqualValues(t, 1, countSindicos(t))
}

func TestDemote(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	roleService := RoleService{}

	seeded, err := userService.GetSindico()
	assert.NoError(t, err)

	demoted, err := roleService.Demote(seeded.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMorador, demoted.Role)
	assert.EqualValues(t, 0, countSindicos(t))
}

func TestDemoteMoradorFails(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	roleService := RoleService{}

	morador, err := userService.Register("paula@example.com", "segredo123", "Paula", "", "", "")
	assert.NoError(t, err)

	_, err = roleService.Demote(morador.Id)
	assert.Equal(t, ErrNotSindico, err)

	// no writes on the failure path
	unchanged, err := userService.GetUserById(morador.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMorador, unchanged.Role)
	assert.EqualValues(t, 1, countSindicos(t))
}
