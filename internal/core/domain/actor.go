package domain

// Actor is the authenticated principal performing a request.
type Actor struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CompanyRole defines the roles a user can have within a company.
type CompanyRole string

const (
	RoleOwner      CompanyRole = "OWNER"
	RoleAccountant CompanyRole = "ACCOUNTANT"
	RoleReadOnly   CompanyRole = "READONLY"
)

var companyRoleRank = map[CompanyRole]int{
	RoleReadOnly:   1,
	RoleAccountant: 2,
	RoleOwner:      3,
}

// Satisfies reports whether r grants at least the permissions of required.
func (r CompanyRole) Satisfies(required CompanyRole) bool {
	have, ok := companyRoleRank[r]
	if !ok {
		return false
	}
	return have >= companyRoleRank[required]
}

// CompanyMember is the membership of a user in a company.
type CompanyMember struct {
	CompanyID string      `json:"companyID"`
	UserID    string      `json:"userID"`
	Role      CompanyRole `json:"role"`
	AuditFields
}
