package users

type CreateUserRequest struct {
	UserID          string `json:"userID" validate:"required,max=100"`
	Password        string `json:"password" validate:"required"`
	FirstName       string `json:"firstName" validate:"max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
	IsAdministrator bool   `json:"isAdministrator"`
}

type RegisterRequest struct {
	UserID    string `json:"userID" validate:"required,max=100"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// UpdateUserRequest is a partial update; absent fields stay untouched. UserID
// is accepted only so an echo of the path identity can be tolerated - an
// actual change is rejected.
type UpdateUserRequest struct {
	UserID          *string `json:"userID,omitempty"`
	Password        *string `json:"password,omitempty"`
	FirstName       *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	IsAdministrator *bool   `json:"isAdministrator,omitempty"`
}
