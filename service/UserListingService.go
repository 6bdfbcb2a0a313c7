package service

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/staffhub/staff-admin-service/client"
	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/metrics"
	"github.com/staffhub/staff-admin-service/utils"
	"github.com/staffhub/staff-admin-service/view"
)

type UserListingService interface {
	GetAuthUsers(ctx context.Context) (*view.AuthUsers, error)
}

func NewUserListingService(identityClient client.IdentityClient, pageSize int) UserListingService {
	return &userListingServiceImpl{
		identityClient: identityClient,
		pageSize:       pageSize,
	}
}

type userListingServiceImpl struct {
	identityClient client.IdentityClient
	pageSize       int
}

// GetAuthUsers traverses every account page of the identity service via its
// continuation token and projects the records into the response shape,
// keeping the service-provided order. Any page failure aborts the whole
// listing.
func (u *userListingServiceImpl) GetAuthUsers(ctx context.Context) (*view.AuthUsers, error) {
	users := make([]view.AuthUser, 0)
	pageToken := ""
	for {
		page, err := u.identityClient.ListAccounts(ctx, u.pageSize, pageToken)
		if err != nil {
			return nil, &exception.CustomError{
				Status:  http.StatusInternalServerError,
				Code:    exception.IdentityServiceFailure,
				Message: exception.IdentityServiceFailureMsg,
				Debug:   err.Error(),
			}
		}
		metrics.IdentityServicePages.WithLabelValues().Inc()

		for _, account := range page.Users {
			users = append(users, view.AuthUser{
				Uid:       account.Uid,
				Email:     account.Email,
				Providers: account.ProviderIds,
				CreatedAt: utils.FormatTimestampIST(account.CreatedAt),
				LastLogin: utils.FormatTimestampIST(account.LastLoginAt),
			})
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	log.Debugf("listed %d auth users", len(users))
	return &view.AuthUsers{Total: len(users), Users: users}, nil
}
