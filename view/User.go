package view

type AuthUser struct {
	Uid       string   `json:"uid"`
	Email     string   `json:"email"`
	Providers []string `json:"providers"`
	CreatedAt string   `json:"createdAt"`
	LastLogin string   `json:"lastLogin"`
}

type AuthUsers struct {
	Total int        `json:"total"`
	Users []AuthUser `json:"users"`
}

type CreateStaffUserReq struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"required,min=3"`
	Role        string `json:"Role" validate:"required,staffrole"`
	City        string `json:"City" validate:"required,staffcity"`
}

type CreatedStaffUser struct {
	Uid         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"Role"`
	City        string `json:"City"`
}

type CreateStaffUserResponse struct {
	Message string           `json:"message"`
	User    CreatedStaffUser `json:"user"`
}
