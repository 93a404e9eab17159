package service

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"condo-panel/database"
	"condo-panel/database/model"
)

var (
	ErrEmptyServiceName     = errors.New("service name is empty")
	ErrDuplicateServiceName = errors.New("service already registered")
)

// Seed catalog installed by the migrate command.
var defaultServiceTypes = []string{
	"Elétrica",
	"Hidráulica",
	"Jardinagem",
	"Elevador",
	"Segurança",
}

// CatalogService curates the list of service types residents can request.
type CatalogService struct{}

// normalizeServiceName trims and canonicalizes capitalization: first rune
// upper, the rest lower, so "elétrica" and "ELÉTRICA" are the same entry.
func normalizeServiceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

// Create registers a new service type. Empty and duplicate names are
// rejected before any write.
func (s *CatalogService) Create(name string) (*model.ServiceType, error) {
	db := database.GetDB()

	name = normalizeServiceName(name)
	if name == "" {
		return nil, ErrEmptyServiceName
	}

	var count int64
	err := db.Model(model.ServiceType{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateServiceName
	}

	serviceType := &model.ServiceType{Name: name}
	if err := db.Create(serviceType).Error; err != nil {
		return nil, err
	}
	return serviceType, nil
}

// List returns all service types ordered by name for stable display.
func (s *CatalogService) List() ([]model.ServiceType, error) {
	db := database.GetDB()

	var serviceTypes []model.ServiceType
	err := db.Model(model.ServiceType{}).
		Order("name asc").
		Find(&serviceTypes).
		Error
	if err != nil {
		return nil, err
	}
	return serviceTypes, nil
}

func (s *CatalogService) GetById(id int) (*model.ServiceType, error) {
	db := database.GetDB()

	serviceType := &model.ServiceType{}
	err := db.First(serviceType, id).Error
	if err != nil {
		return nil, err
	}
	return serviceType, nil
}

// Seed inserts the default catalog, skipping names that already exist.
func (s *CatalogService) Seed() error {
	for _, name := range defaultServiceTypes {
		_, err := s.Create(name)
		if err != nil && err != ErrDuplicateServiceName {
			return err
		}
	}
	return nil
}
