package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staff-admin-service/client"
	"github.com/staffhub/staff-admin-service/exception"
)

type fakeIdentityClient struct {
	pages     []client.AccountsPage
	listErr   error
	listCalls int
	created   []client.NewAccount
	createErr error
	nextUid   int
}

func (f *fakeIdentityClient) ListAccounts(_ context.Context, _ int, pageToken string) (*client.AccountsPage, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	index := 0
	if pageToken != "" {
		index, _ = strconv.Atoi(pageToken)
	}
	page := f.pages[index]
	if index+1 < len(f.pages) {
		page.NextPageToken = strconv.Itoa(index + 1)
	}
	return &page, nil
}

func (f *fakeIdentityClient) CreateAccount(_ context.Context, account client.NewAccount) (*client.AccountRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, account)
	f.nextUid++
	return &client.AccountRecord{
		Uid:         fmt.Sprintf("uid-%d", f.nextUid),
		Email:       account.Email,
		DisplayName: account.DisplayName,
	}, nil
}

func accountsPage(count int, prefix string) client.AccountsPage {
	page := client.AccountsPage{}
	for i := 0; i < count; i++ {
		page.Users = append(page.Users, client.AccountRecord{
			Uid:         fmt.Sprintf("%s-%d", prefix, i),
			Email:       fmt.Sprintf("%s-%d@example.com", prefix, i),
			ProviderIds: []string{"password"},
			CreatedAt:   "2024-01-01T18:35:00Z",
			LastLoginAt: "2024-03-15T10:00:00Z",
		})
	}
	return page
}

func TestGetAuthUsersTraversesAllPages(t *testing.T) {
	identityClient := &fakeIdentityClient{
		pages: []client.AccountsPage{
			accountsPage(200, "a"),
			accountsPage(200, "b"),
			accountsPage(17, "c"),
		},
	}
	listingService := NewUserListingService(identityClient, 200)

	users, err := listingService.GetAuthUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 417, users.Total)
	assert.Len(t, users.Users, 417)
	assert.Equal(t, 3, identityClient.listCalls)

	seen := make(map[string]bool)
	for _, user := range users.Users {
		assert.False(t, seen[user.Uid], "duplicate uid %s", user.Uid)
		seen[user.Uid] = true
	}
	// service-provided order is preserved
	assert.Equal(t, "a-0", users.Users[0].Uid)
	assert.Equal(t, "b-0", users.Users[200].Uid)
	assert.Equal(t, "c-16", users.Users[416].Uid)
}

func TestGetAuthUsersProjection(t *testing.T) {
	identityClient := &fakeIdentityClient{
		pages: []client.AccountsPage{
			{Users: []client.AccountRecord{{
				Uid:         "u1",
				Email:       "ann@example.com",
				ProviderIds: []string{"password", "google.com"},
				CreatedAt:   "2024-01-01T18:35:00Z",
				LastLoginAt: "",
			}}},
		},
	}
	listingService := NewUserListingService(identityClient, 200)

	users, err := listingService.GetAuthUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users.Users, 1)

	user := users.Users[0]
	assert.Equal(t, "u1", user.Uid)
	assert.Equal(t, []string{"password", "google.com"}, user.Providers)
	assert.Equal(t, "Jan 2, 2024", user.CreatedAt)
	assert.Equal(t, "Invalid Date", user.LastLogin)
}

func TestGetAuthUsersAbortsOnPageFailure(t *testing.T) {
	identityClient := &fakeIdentityClient{listErr: fmt.Errorf("upstream unavailable")}
	listingService := NewUserListingService(identityClient, 200)

	users, err := listingService.GetAuthUsers(context.Background())
	assert.Nil(t, users)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, customError.Status)
	assert.Equal(t, exception.IdentityServiceFailure, customError.Code)
	assert.Contains(t, customError.Debug, "upstream unavailable")
}
