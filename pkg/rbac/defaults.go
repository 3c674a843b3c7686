package rbac

// Built-in roles of the reference configuration.
const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleSalesManager Role = "sales_manager"
	RoleProofReader  Role = "proof_reader"
	RoleEditor       Role = "editor"
	RolePremiumUser  Role = "premium_user"
	RoleUser         Role = "user"
	RoleGuest        Role = "guest"
)

// Built-in permissions of the reference configuration.
const (
	PermProductCreate  Permission = "product:create"
	PermProductRead    Permission = "product:read"
	PermProductUpdate  Permission = "product:update"
	PermProductDelete  Permission = "product:delete"
	PermProductReview  Permission = "product:review"
	PermProductApprove Permission = "product:approve"
	PermUserCreate     Permission = "user:create"
	PermUserRead       Permission = "user:read"
	PermUserUpdate     Permission = "user:update"
	PermUserEdit       Permission = "user:edit"
	PermUserDelete     Permission = "user:delete"
)

// DefaultTables returns a fresh copy of the reference role configuration.
func DefaultTables() Tables {
	return Tables{
		Hierarchy: map[Role][]Role{
			RoleSuperAdmin:   {RoleAdmin},
			RoleAdmin:        {RoleManager},
			RoleManager:      {RoleProofReader, RoleEditor, RoleSalesManager},
			RoleSalesManager: {RoleUser},
			RoleProofReader:  {RoleUser},
			RoleEditor:       {RoleUser, RolePremiumUser},
			RolePremiumUser:  {RoleUser},
			RoleUser:         {RoleGuest},
			RoleGuest:        {},
		},
		Permissions: map[Role][]Permission{
			RoleSuperAdmin:   {},
			RoleAdmin:        {PermProductDelete, PermUserDelete},
			RoleManager:      {PermProductUpdate, PermUserUpdate, PermUserCreate},
			RoleSalesManager: {PermProductCreate},
			RoleProofReader:  {PermProductReview, PermProductApprove, PermProductUpdate},
			RoleEditor:       {PermProductCreate, PermUserCreate},
			RolePremiumUser:  {PermProductReview, PermUserEdit},
			RoleUser:         {PermUserRead},
			RoleGuest:        {PermProductRead},
		},
	}
}
