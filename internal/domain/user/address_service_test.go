// internal/domain/user/address_service_test.go
package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAddressService(t *testing.T) *AddressService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&User{}, &Address{}))

	return NewAddressService(db, &config.Config{})
}

func addressRequest(name string, isDefault bool) *CreateAddressRequest {
	return &CreateAddressRequest{
		FullName:     name,
		Phone:        "9999999999",
		AddressLine1: "12 Main Street",
		City:         "Kolkata",
		PostalCode:   "700001",
		IsDefault:    isDefault,
	}
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	svc := setupAddressService(t)

	address, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)
	assert.True(t, address.IsDefault)
	assert.Equal(t, "India", address.Country)
}

func TestNewDefaultClearsPrevious(t *testing.T) {
	svc := setupAddressService(t)

	first, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)

	second, err := svc.CreateAddress(1, addressRequest("Office", true))
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reloaded, err := svc.GetAddress(1, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	// exactly one default at any time
	addresses, err := svc.GetUserAddresses(1)
	require.NoError(t, err)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetDefaultAddress(t *testing.T) {
	svc := setupAddressService(t)

	first, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)
	second, err := svc.CreateAddress(1, addressRequest("Office", false))
	require.NoError(t, err)

	updated, err := svc.SetDefaultAddress(1, second.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := svc.GetAddress(1, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestDefaultAddressListedFirst(t *testing.T) {
	svc := setupAddressService(t)

	_, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)
	office, err := svc.CreateAddress(1, addressRequest("Office", true))
	require.NoError(t, err)

	addresses, err := svc.GetUserAddresses(1)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, office.ID, addresses[0].ID)
}

func TestAddressOwnershipEnforced(t *testing.T) {
	svc := setupAddressService(t)

	address, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)

	_, err = svc.GetAddress(2, address.ID)
	assert.ErrorContains(t, err, "not found")

	err = svc.DeleteAddress(2, address.ID)
	assert.ErrorContains(t, err, "not found")
}

func TestUpdateAddressPartialFields(t *testing.T) {
	svc := setupAddressService(t)

	address, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)

	newCity := "Mumbai"
	updated, err := svc.UpdateAddress(1, address.ID, &UpdateAddressRequest{City: &newCity})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "Home", updated.FullName)
}

func TestDeleteAddress(t *testing.T) {
	svc := setupAddressService(t)

	address, err := svc.CreateAddress(1, addressRequest("Home", false))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(1, address.ID))

	_, err = svc.GetAddress(1, address.ID)
	assert.ErrorContains(t, err, "not found")
}
