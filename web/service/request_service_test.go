package service

import (
	"strings"
	"testing"
	"time"

	"condo-panel/database/model"

	"github.com/stretchr/testify/assert"
)

func seedRequestFixtures(t *testing.T) (owner *model.User, other *model.User, eletrica *model.ServiceType, hidraulica *model.ServiceType) {
	t.Helper()

	userService := UserService{}
	catalogService := CatalogService{}

	var err error
	owner, err = userService.Register("morador@example.com", "segredo123", "Morador", "", "A", "101")
	assert.NoError(t, err)
	other, err = userService.Register("vizinho@example.com", "segredo123", "Vizinho", "", "A", "102")
	assert.NoError(t, err)

	eletrica, err = catalogService.Create("Elétrica")
	assert.NoError(t, err)
	hidraulica, err = catalogService.Create("Hidráulica")
	assert.NoError(t, err)
	return
}

func TestCreateRequest(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	request, err := service.Create(owner.Id, eletrica.Id, "Tomada queimada", "Tomada da sala sem energia", "")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, request.Status)
	assert.False(t, request.CreatedAt.IsZero())

	stored, err := service.GetById(request.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Tomada queimada", stored.Title)
	assert.Equal(t, "morador@example.com", stored.User.Email)
	assert.Equal(t, "Elétrica", stored.ServiceType.Name)
}

func TestCreateRequestValidation(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "", "sem título", "")
	assert.Equal(t, ErrMissingField, err)

	_, err = service.Create(owner.Id, 0, "Sem serviço", "", "")
	assert.Equal(t, ErrMissingField, err)

	_, err = service.Create(owner.Id, 9999, "Serviço inexistente", "", "")
	assert.Equal(t, ErrInvalidServiceType, err)

	requests, err := service.ListAll(RequestFilter{})
	assert.NoError(t, err)
	assert.Empty(t, requests)
}

func TestListForOwnerScoping(t *testing.T) {
	setup()
	defer teardown()

	owner, other, eletrica, hidraulica := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "Tomada", "", "")
	assert.NoError(t, err)
	_, err = service.Create(owner.Id, hidraulica.Id, "Vazamento", "", "")
	assert.NoError(t, err)
	_, err = service.Create(other.Id, eletrica.Id, "Lâmpada", "", "")
	assert.NoError(t, err)

	mine, err := service.ListForOwner(owner.Id, RequestFilter{})
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, owner.Id, r.UserId)
	}

	// the owner scope wins even when the filter names someone else
	mine, err = service.ListForOwner(owner.Id, RequestFilter{OwnerId: other.Id})
	assert.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := service.ListAll(RequestFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListAllFilters(t *testing.T) {
	setup()
	defer teardown()

	owner, other, eletrica, hidraulica := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "Tomada queimada", "", "")
	assert.NoError(t, err)
	vazamento, err := service.Create(owner.Id, hidraulica.Id, "Vazamento no teto", "", "")
	assert.NoError(t, err)
	_, err = service.Create(other.Id, eletrica.Id, "Lâmpada do hall", "", "")
	assert.NoError(t, err)

	_, err = service.UpdateStatus(vazamento.Id, model.StatusCompleted, "")
	assert.NoError(t, err)

	byService, err := service.ListAll(RequestFilter{ServiceTypeId: eletrica.Id})
	assert.NoError(t, err)
	assert.Len(t, byService, 2)

	byStatus, err := service.ListAll(RequestFilter{Status: model.StatusCompleted})
	assert.NoError(t, err)
	assert.Len(t, byStatus, 1)
	assert.Equal(t, vazamento.Id, byStatus[0].Id)

	byTitle, err := service.ListAll(RequestFilter{Title: "teto"})
	assert.NoError(t, err)
	assert.Len(t, byTitle, 1)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	byDate, err := service.ListAll(RequestFilter{DateFrom: today, DateTo: today})
	assert.NoError(t, err)
	assert.Len(t, byDate, 3)

	past, err := service.ListAll(RequestFilter{DateTo: today.AddDate(0, 0, -2)})
	assert.NoError(t, err)
	assert.Empty(t, past)
}

func TestUpdateStatus(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	request, err := service.Create(owner.Id, eletrica.Id, "Tomada", "", "")
	assert.NoError(t, err)

	updated, err := service.UpdateStatus(request.Id, model.StatusInProgress, "técnico agendado")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, "técnico agendado", updated.Note)

	stored, err := service.GetById(request.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, stored.Status)
	assert.Equal(t, "técnico agendado", stored.Note)

	// backward transitions among the canonical values are allowed
	_, err = service.UpdateStatus(request.Id, model.StatusPending, "")
	assert.NoError(t, err)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	request, err := service.Create(owner.Id, eletrica.Id, "Tomada", "", "")
	assert.NoError(t, err)

	_, err = service.UpdateStatus(request.Id, "Cancelled", "")
	assert.Equal(t, ErrInvalidStatus, err)

	stored, err := service.GetById(request.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status)

	_, err = service.UpdateStatus(9999, model.StatusCompleted, "")
	assert.Equal(t, ErrRequestNotFound, err)
}

func TestExportCSV(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "Tomada queimada", "linha um\nlinha dois", "")
	assert.NoError(t, err)

	header := []string{"Usuário", "Nome", "Serviço", "Descrição", "Data", "Status"}
	loc, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	data, err := service.ExportCSV(RequestFilter{}, header, loc)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Usuário,Nome,Serviço,Descrição,Data,Status", lines[0])
	assert.Contains(t, lines[1], "morador@example.com")
	assert.Contains(t, lines[1], "Tomada queimada")
	// newlines in the description are flattened
	assert.Contains(t, lines[1], "linha um linha dois")
	assert.Contains(t, lines[1], model.StatusPending)
}

func TestDashboardCounts(t *testing.T) {
	setup()
	defer teardown()

	owner, other, eletrica, hidraulica := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "Tomada", "", "")
	assert.NoError(t, err)
	_, err = service.Create(other.Id, eletrica.Id, "Lâmpada", "", "")
	assert.NoError(t, err)
	done, err := service.Create(owner.Id, hidraulica.Id, "Vazamento", "", "")
	assert.NoError(t, err)
	_, err = service.UpdateStatus(done.Id, model.StatusCompleted, "")
	assert.NoError(t, err)

	byService, err := service.CountByServiceType()
	assert.NoError(t, err)
	counts := map[string]int64{}
	for _, c := range byService {
		counts[c.Name] = c.Quantity
	}
	assert.EqualValues(t, 2, counts["Elétrica"])
	assert.EqualValues(t, 1, counts["Hidráulica"])

	byStatus, err := service.CountByStatus()
	assert.NoError(t, err)
	statusCounts := map[string]int64{}
	for _, c := range byStatus {
		statusCounts[c.Status] = c.Quantity
	}
	assert.EqualValues(t, 2, statusCounts[model.StatusPending])
	assert.EqualValues(t, 1, statusCounts[model.StatusCompleted])
}

func TestClean(t *testing.T) {
	setup()
	defer teardown()

	owner, _, eletrica, _ := seedRequestFixtures(t)
	service := RequestService{}

	_, err := service.Create(owner.Id, eletrica.Id, "Tomada", "", "")
	assert.NoError(t, err)

	assert.NoError(t, service.Clean())

	requests, err := service.ListAll(RequestFilter{})
	assert.NoError(t, err)
	assert.Empty(t, requests)

	catalogService := CatalogService{}
	serviceTypes, err := catalogService.List()
	assert.NoError(t, err)
	assert.Empty(t, serviceTypes)

	// users survive a clean
	userService := UserService{}
	users, err := userService.GetAllUsers()
	assert.NoError(t, err)
	assert.NotEmpty(t, users)
}
