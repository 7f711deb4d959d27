package request

// CreateUserRequest is the admin provisioning payload. The role is part of
// the provisioning command itself; there is no role update endpoint.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}
