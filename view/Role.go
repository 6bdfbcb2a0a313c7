package view

const (
	RoleSalesAssociate = "sales associate"
	RoleManager        = "Manager"
	RoleAdmin          = "admin"
	RoleOpsHead        = "OPS Head"
)

const CityChennai = "CHENNAI"

var StaffRoles = []string{RoleSalesAssociate, RoleManager, RoleAdmin, RoleOpsHead}

var StaffCities = []string{CityChennai}

func IsValidStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidStaffCity(city string) bool {
	for _, c := range StaffCities {
		if c == city {
			return true
		}
	}
	return false
}
