package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateServiceTypeNormalizesName(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	created, err := service.Create("  elétrica  ")
	assert.NoError(t, err)
	assert.Equal(t, "Elétrica", created.Name)

	created, err = service.Create("PINTURA")
	assert.NoError(t, err)
	assert.Equal(t, "Pintura", created.Name)
}

func TestCreateServiceTypeEmptyName(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	_, err := service.Create("   ")
	assert.Equal(t, ErrEmptyServiceName, err)

	serviceTypes, err := service.List()
	assert.NoError(t, err)
	assert.Empty(t, serviceTypes)
}

func TestCreateServiceTypeDuplicate(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	_, err := service.Create("Jardinagem")
	assert.NoError(t, err)

	// duplicates collapse after normalization
	_, err = service.Create("jardinagem")
	assert.Equal(t, ErrDuplicateServiceName, err)
	_, err = service.Create(" JARDINAGEM ")
	assert.Equal(t, ErrDuplicateServiceName, err)

	serviceTypes, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, serviceTypes, 1)
}

func TestSeed(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	assert.NoError(t, service.Seed())

	serviceTypes, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, serviceTypes, len(defaultServiceTypes))

	// seeding again must not duplicate the catalog
	assert.NoError(t, service.Seed())
	serviceTypes, err = service.List()
	assert.NoError(t, err)
	assert.Len(t, serviceTypes, len(defaultServiceTypes))
}
