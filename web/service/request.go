package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"time"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/logger"

	"gorm.io/gorm"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidServiceType = errors.New("invalid service type")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrRequestNotFound    = errors.New("request not found")
)

// RequestFilter carries the optional, conjunctive filter fields for request
// listings. Zero values mean "not set". Title is a substring match; the date
// bounds are inclusive on the creation date.
type RequestFilter struct {
	OwnerId       int
	Title         string
	ServiceTypeId int
	Status        string
	DateFrom      time.Time
	DateTo        time.Time
}

// RequestService owns the service-request rows: creation, filtered listings,
// status updates and the delimited-text export.
type RequestService struct{}

// applyFilter translates the filter to parameterized conditions. Every
// listing and the export go through this single routine.
func (s *RequestService) applyFilter(tx *gorm.DB, filter RequestFilter) *gorm.DB {
	if filter.OwnerId != 0 {
		tx = tx.Where("user_id = ?", filter.OwnerId)
	}
	if filter.Title != "" {
		tx = tx.Where("title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.ServiceTypeId != 0 {
		tx = tx.Where("service_type_id = ?", filter.ServiceTypeId)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if !filter.DateFrom.IsZero() {
		tx = tx.Where("created_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		// Inclusive upper bound on the creation date.
		tx = tx.Where("created_at < ?", filter.DateTo.AddDate(0, 0, 1))
	}
	return tx
}

// Create stores a new request for ownerId. Status is always Pending and the
// creation timestamp is the server clock in UTC at insertion.
func (s *RequestService) Create(ownerId int, serviceTypeId int, title, description, photoPath string) (*model.Request, error) {
	db := database.GetDB()

	if title == "" || serviceTypeId == 0 {
		return nil, ErrMissingField
	}

	var count int64
	err := db.Model(model.ServiceType{}).Where("id = ?", serviceTypeId).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidServiceType
	}

	request := &model.Request{
		UserId:        ownerId,
		ServiceTypeId: serviceTypeId,
		Title:         title,
		Description:   description,
		PhotoPath:     photoPath,
		Status:        model.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetById(id int) (*model.Request, error) {
	db := database.GetDB()

	request := &model.Request{}
	err := db.Preload("User").Preload("ServiceType").First(request, id).Error
	if database.IsNotFound(err) {
		return nil, ErrRequestNotFound
	} else if err != nil {
		return nil, err
	}
	return request, nil
}

// ListForOwner returns one resident's requests, newest first. The owner scope
// is not optional: requests of other owners never appear.
func (s *RequestService) ListForOwner(ownerId int, filter RequestFilter) ([]model.Request, error) {
	filter.OwnerId = ownerId
	return s.list(filter)
}

// ListAll returns requests across all owners, newest first. Manager-only;
// the role gate lives in the web layer.
func (s *RequestService) ListAll(filter RequestFilter) ([]model.Request, error) {
	filter.OwnerId = 0
	return s.list(filter)
}

func (s *RequestService) list(filter RequestFilter) ([]model.Request, error) {
	db := database.GetDB()

	var requests []model.Request
	tx := db.Model(model.Request{}).
		Preload("User").
		Preload("ServiceType")
	tx = s.applyFilter(tx, filter)
	err := tx.Order("created_at desc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus sets the status and the sindico note of one request. The
// status must be one of the canonical values.
func (s *RequestService) UpdateStatus(id int, newStatus string, note string) (*model.Request, error) {
	db := database.GetDB()

	if !model.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	request := &model.Request{}
	err := db.First(request, id).Error
	if database.IsNotFound(err) {
		return nil, ErrRequestNotFound
	} else if err != nil {
		return nil, err
	}

	request.Status = newStatus
	request.Note = note
	if err := db.Save(request).Error; err != nil {
		return nil, err
	}

	logger.Infof("request %d status set to %s", id, newStatus)
	return request, nil
}

// ExportCSV renders the filtered requests as delimited text with a fixed
// column order: owner, title, service, description, date, status. The header
// row comes from the caller so it can be localized.
func (s *RequestService) ExportCSV(filter RequestFilter, header []string, loc *time.Location) ([]byte, error) {
	requests, err := s.ListAll(filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range requests {
		r := &requests[i]
		record := []string{
			r.User.Email,
			r.Title,
			r.ServiceType.Name,
			strings.ReplaceAll(r.Description, "\n", " "),
			r.CreatedAt.In(loc).Format("02/01/2006 15:04"),
			r.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServiceCount is one dashboard aggregate row: requests per service type.
type ServiceCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// StatusCount is one dashboard aggregate row: requests per status.
type StatusCount struct {
	Status   string `json:"status"`
	Quantity int64  `json:"quantity"`
}

func (s *RequestService) CountByServiceType() ([]ServiceCount, error) {
	db := database.GetDB()

	var counts []ServiceCount
	err := db.Model(model.ServiceType{}).
		Select("service_types.name as name, count(requests.id) as quantity").
		Joins("left join requests on requests.service_type_id = service_types.id").
		Group("service_types.id").
		Order("service_types.name asc").
		Scan(&counts).
		Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *RequestService) CountByStatus() ([]StatusCount, error) {
	db := database.GetDB()

	var counts []StatusCount
	err := db.Model(model.Request{}).
		Select("status, count(id) as quantity").
		Group("status").
		Scan(&counts).
		Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Clean deletes all requests and service types, keeping users. Exposed only
// through the clean CLI subcommand.
func (s *RequestService) Clean() error {
	db := database.GetDB()
	if err := db.Where("1 = 1").Delete(model.Request{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(model.ServiceType{}).Error
}
