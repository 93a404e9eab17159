package service

import (
	"os"
	"testing"

	"condo-panel/database"
	"condo-panel/database/model"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestRegister(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("maria@example.com", "segredo123", "Maria", "11999990000", "A", "101")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMorador, user.Role)
	assert.NotEqual(t, "segredo123", user.PasswordHash)

	stored, err := service.GetUserByEmail("maria@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Maria", stored.Name)
	assert.Equal(t, "A", stored.Block)
	assert.Equal(t, "101", stored.Apartment)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.Register("maria@example.com", "segredo123", "Maria", "", "", "")
	assert.NoError(t, err)

	_, err = service.Register("maria@example.com", "outra", "Outra Maria", "", "", "")
	assert.Equal(t, ErrDuplicateEmail, err)

	users, err := service.GetAllUsers()
	assert.NoError(t, err)
	// seeded sindico plus the one successful registration
	assert.Len(t, users, 2)
}

func TestCheckUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.Register("joao@example.com", "segredo123", "João", "", "", "")
	assert.NoError(t, err)

	user := service.CheckUser("joao@example.com", "segredo123", "")
	assert.NotNil(t, user)
	assert.Equal(t, "joao@example.com", user.Email)

	assert.Nil(t, service.CheckUser("joao@example.com", "errada", ""))
	assert.Nil(t, service.CheckUser("ninguem@example.com", "segredo123", ""))
	assert.Nil(t, service.CheckUser("joao@example.com", "", ""))
}

func TestCheckUserSeededSindico(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user := service.CheckUser("sindico@condominio.local", "sindico", "")
	assert.NotNil(t, user)
	assert.Equal(t, model.RoleSindico, user.Role)
}

func TestUpdateProfile(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("ana@example.com", "segredo123", "Ana", "", "B", "202")
	assert.NoError(t, err)

	err = service.UpdateProfile(user.Id, "ana.nova@example.com", "Ana Nova", "11888880000", "C", "303", "")
	assert.NoError(t, err)

	updated, err := service.GetUserById(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, "ana.nova@example.com", updated.Email)
	assert.Equal(t, "Ana Nova", updated.Name)
	assert.Equal(t, "C", updated.Block)

	// password unchanged when the field is left empty
	assert.NotNil(t, service.CheckUser("ana.nova@example.com", "segredo123", ""))

	err = service.UpdateProfile(user.Id, "ana.nova@example.com", "Ana Nova", "", "C", "303", "novasenha")
	assert.NoError(t, err)
	assert.Nil(t, service.CheckUser("ana.nova@example.com", "segredo123", ""))
	assert.NotNil(t, service.CheckUser("ana.nova@example.com", "novasenha", ""))
}

func TestUpdateProfileEmailInUse(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.Register("um@example.com", "segredo123", "Um", "", "", "")
	assert.NoError(t, err)
	dois, err := service.Register("dois@example.com", "segredo123", "Dois", "", "", "")
	assert.NoError(t, err)

	err = service.UpdateProfile(dois.Id, "um@example.com", "Dois", "", "", "", "")
	assert.Equal(t, ErrEmailInUse, err)

	unchanged, err := service.GetUserById(dois.Id)
	assert.NoError(t, err)
	assert.Equal(t, "dois@example.com", unchanged.Email)
}
