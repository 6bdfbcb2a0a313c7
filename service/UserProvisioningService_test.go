package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staff-admin-service/client"
	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/view"
)

type fakeDirectoryClient struct {
	documentName string
	missing      bool
	findErr      error
	appendErr    error
	entries      map[string]view.DirectoryEntry
}

func newFakeDirectoryClient() *fakeDirectoryClient {
	return &fakeDirectoryClient{
		documentName: "projects/test/databases/(default)/documents/LoginCredentials/shared",
		entries:      make(map[string]view.DirectoryEntry),
	}
}

func (f *fakeDirectoryClient) FindDirectoryDocument(_ context.Context) (*client.DirectoryDocument, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.missing {
		return nil, nil
	}
	emails := make(map[string]struct{}, len(f.entries))
	for email := range f.entries {
		emails[email] = struct{}{}
	}
	return &client.DirectoryDocument{Name: f.documentName, Emails: emails}, nil
}

func (f *fakeDirectoryClient) AppendEntry(_ context.Context, _ string, email string, entry view.DirectoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries[email] = entry
	return nil
}

func provisioningReq() view.CreateStaffUserReq {
	return view.CreateStaffUserReq{
		Email:       "a@b.com",
		Password:    "secret1",
		DisplayName: "Ann",
		Role:        "admin",
		City:        "CHENNAI",
	}
}

func TestCreateStaffUserSuccess(t *testing.T) {
	identityClient := &fakeIdentityClient{}
	directoryClient := newFakeDirectoryClient()
	provisioningService := NewUserProvisioningService(identityClient, directoryClient, "LoginCredentials")

	created, err := provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	require.NoError(t, err)
	assert.Equal(t, "uid-1", created.Uid)
	assert.Equal(t, "a@b.com", created.Email)
	assert.Equal(t, "Ann", created.DisplayName)
	assert.Equal(t, "admin", created.Role)
	assert.Equal(t, "CHENNAI", created.City)

	require.Len(t, identityClient.created, 1)
	assert.True(t, identityClient.created[0].EmailVerified)

	require.Len(t, directoryClient.entries, 1)
	assert.Equal(t, view.DirectoryEntry{"Ann", "a@b.com", "admin", "CHENNAI"}, directoryClient.entries["a@b.com"])
}

func TestCreateStaffUserDuplicateEmail(t *testing.T) {
	identityClient := &fakeIdentityClient{}
	directoryClient := newFakeDirectoryClient()
	provisioningService := NewUserProvisioningService(identityClient, directoryClient, "LoginCredentials")

	_, err := provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	require.NoError(t, err)

	_, err = provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, customError.Status)
	assert.Equal(t, exception.EmailAlreadyTaken, customError.Code)
	assert.Contains(t, customError.Error(), "a@b.com")

	// the directory gained exactly one key across both attempts
	assert.Len(t, directoryClient.entries, 1)
}

func TestCreateStaffUserDirectoryDocumentMissing(t *testing.T) {
	identityClient := &fakeIdentityClient{}
	directoryClient := newFakeDirectoryClient()
	directoryClient.missing = true
	provisioningService := NewUserProvisioningService(identityClient, directoryClient, "LoginCredentials")

	_, err := provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, customError.Status)
	assert.Equal(t, exception.DirectoryDocumentNotFound, customError.Code)
	assert.Equal(t, "No document found in LoginCredentials", customError.Error())
}

func TestCreateStaffUserAccountCreationRejected(t *testing.T) {
	identityClient := &fakeIdentityClient{createErr: fmt.Errorf("EMAIL_EXISTS")}
	directoryClient := newFakeDirectoryClient()
	provisioningService := NewUserProvisioningService(identityClient, directoryClient, "LoginCredentials")

	_, err := provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, customError.Status)
	assert.Equal(t, exception.AccountCreationFailed, customError.Code)
	assert.Contains(t, customError.Error(), "EMAIL_EXISTS")

	// the directory is never touched when step one fails
	assert.Empty(t, directoryClient.entries)
}

func TestCreateStaffUserNoRollbackOnDirectoryFailure(t *testing.T) {
	identityClient := &fakeIdentityClient{}
	directoryClient := newFakeDirectoryClient()
	directoryClient.appendErr = fmt.Errorf("store unavailable")
	provisioningService := NewUserProvisioningService(identityClient, directoryClient, "LoginCredentials")

	_, err := provisioningService.CreateStaffUser(context.Background(), provisioningReq())
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, exception.DirectoryUpdateFailed, customError.Code)

	// the identity account stays created, there is no compensating delete
	assert.Len(t, identityClient.created, 1)
}
