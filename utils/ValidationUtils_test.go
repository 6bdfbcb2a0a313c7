package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/view"
)

func validCreateReq() view.CreateStaffUserReq {
	return view.CreateStaffUserReq{
		Email:       "ann@example.com",
		Password:    "secret1",
		DisplayName: "Ann",
		Role:        "admin",
		City:        "CHENNAI",
	}
}

func collectedErrors(t *testing.T, err error) []string {
	t.Helper()
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	assert.Equal(t, exception.ValidationFailed, customError.Code)
	messages, ok := customError.Params["errors"].([]string)
	require.True(t, ok)
	return messages
}

func TestValidateObjectValidPayload(t *testing.T) {
	assert.NoError(t, ValidateObject(validCreateReq()))
}

func TestValidateObjectCollectsAllViolations(t *testing.T) {
	req := validCreateReq()
	req.Email = "not-an-email"
	req.Password = "short"
	req.Role = "janitor"

	messages := collectedErrors(t, ValidateObject(req))
	assert.Len(t, messages, 3)
	assert.Contains(t, messages, "email must be a valid email")
	assert.Contains(t, messages, "password length must be at least 6 characters long")
	assert.Contains(t, messages, "Role must be one of: sales associate, Manager, admin, OPS Head")
}

func TestValidateObjectRequiredFields(t *testing.T) {
	messages := collectedErrors(t, ValidateObject(view.CreateStaffUserReq{}))
	assert.Len(t, messages, 5)
	assert.Contains(t, messages, "email is required")
	assert.Contains(t, messages, "password is required")
	assert.Contains(t, messages, "displayName is required")
	assert.Contains(t, messages, "Role is required")
	assert.Contains(t, messages, "City is required")
}

func TestValidateObjectCityAllowList(t *testing.T) {
	req := validCreateReq()
	req.City = "MADRAS"

	messages := collectedErrors(t, ValidateObject(req))
	assert.Len(t, messages, 1)
	assert.Equal(t, "City must be one of: CHENNAI", messages[0])
}

func TestValidateObjectEveryRoleAccepted(t *testing.T) {
	for _, role := range view.StaffRoles {
		req := validCreateReq()
		req.Role = role
		assert.NoError(t, ValidateObject(req), "role %q should be accepted", role)
	}
}
