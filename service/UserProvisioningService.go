package service

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/staffhub/staff-admin-service/client"
	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/metrics"
	"github.com/staffhub/staff-admin-service/view"
)

type UserProvisioningService interface {
	CreateStaffUser(ctx context.Context, req view.CreateStaffUserReq) (*view.CreatedStaffUser, error)
}

func NewUserProvisioningService(identityClient client.IdentityClient, directoryClient client.DirectoryClient, collection string) UserProvisioningService {
	return &userProvisioningServiceImpl{
		identityClient:  identityClient,
		directoryClient: directoryClient,
		collection:      collection,
	}
}

type userProvisioningServiceImpl struct {
	identityClient  client.IdentityClient
	directoryClient client.DirectoryClient
	collection      string
}

// CreateStaffUser performs two sequential effects: create the identity
// service account, then append the credential directory entry keyed by the
// user's email. A directory failure after the account was created is not
// rolled back; the orphaned account is logged and the request fails.
func (u *userProvisioningServiceImpl) CreateStaffUser(ctx context.Context, req view.CreateStaffUserReq) (*view.CreatedStaffUser, error) {
	account, err := u.identityClient.CreateAccount(ctx, client.NewAccount{
		Email:         req.Email,
		Password:      req.Password,
		DisplayName:   req.DisplayName,
		EmailVerified: true,
	})
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.AccountCreationFailed,
			Message: exception.AccountCreationFailedMsg,
			Params:  map[string]interface{}{"error": err.Error()},
		}
	}

	if err := u.appendDirectoryEntry(ctx, req); err != nil {
		log.Warnf("identity account %s was created but directory entry for %s was not stored: %v",
			account.Uid, req.Email, err)
		return nil, err
	}

	metrics.ProvisionedUsersCount.WithLabelValues().Inc()
	return &view.CreatedStaffUser{
		Uid:         account.Uid,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        req.Role,
		City:        req.City,
	}, nil
}

func (u *userProvisioningServiceImpl) appendDirectoryEntry(ctx context.Context, req view.CreateStaffUserReq) error {
	document, err := u.directoryClient.FindDirectoryDocument(ctx)
	if err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.DirectoryUpdateFailed,
			Message: exception.DirectoryUpdateFailedMsg,
			Params:  map[string]interface{}{"email": req.Email},
			Debug:   err.Error(),
		}
	}
	if document == nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.DirectoryDocumentNotFound,
			Message: exception.DirectoryDocumentNotFoundMsg,
			Params:  map[string]interface{}{"collection": u.collection},
		}
	}
	if document.HasEmail(req.Email) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmailAlreadyTaken,
			Message: exception.EmailAlreadyTakenMsg,
			Params:  map[string]interface{}{"email": req.Email},
		}
	}

	entry := view.NewDirectoryEntry(req.DisplayName, req.Email, req.Role, req.City)
	if err := u.directoryClient.AppendEntry(ctx, document.Name, req.Email, entry); err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.DirectoryUpdateFailed,
			Message: exception.DirectoryUpdateFailedMsg,
			Params:  map[string]interface{}{"email": req.Email},
			Debug:   err.Error(),
		}
	}
	return nil
}
