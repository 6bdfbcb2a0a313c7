package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/service"
	"github.com/staffhub/staff-admin-service/utils"
	"github.com/staffhub/staff-admin-service/view"
)

type UserController interface {
	GetAuthUsers(w http.ResponseWriter, r *http.Request)
	CreateStaffUser(w http.ResponseWriter, r *http.Request)
}

func NewUserController(listingService service.UserListingService, provisioningService service.UserProvisioningService) UserController {
	return &userControllerImpl{
		listingService:      listingService,
		provisioningService: provisioningService,
	}
}

type userControllerImpl struct {
	listingService      service.UserListingService
	provisioningService service.UserProvisioningService
}

func (u userControllerImpl) GetAuthUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.listingService.GetAuthUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, "Failed to list auth users", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, users)
}

func (u userControllerImpl) CreateStaffUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	var createReq view.CreateStaffUserReq
	err = json.Unmarshal(body, &createReq)
	if err != nil {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	validationErr := utils.ValidateObject(createReq)
	if validationErr != nil {
		if customError, ok := validationErr.(*exception.CustomError); ok {
			utils.RespondWithCustomError(w, customError)
			return
		}
	}

	user, err := u.provisioningService.CreateStaffUser(r.Context(), createReq)
	if err != nil {
		utils.RespondWithError(w, "Failed to create staff user", err)
		return
	}
	utils.RespondWithJson(w, http.StatusCreated, view.CreateStaffUserResponse{
		Message: "User created successfully",
		User:    *user,
	})
}
