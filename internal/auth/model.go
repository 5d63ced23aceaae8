package auth

import "time"

// User is an account record. PasswordHash and the store-assigned fields never
// leave the process; responses are built from Public().
type User struct {
	ID              string    `json:"-"`
	UserID          string    `json:"userID"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	IsAdministrator bool      `json:"isAdministrator"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// PublicUser is the sanitized response shape for an account.
type PublicUser struct {
	UserID          string `json:"userID"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	IsAdministrator bool   `json:"isAdministrator"`
}

// Public strips the credential and store-internal fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:          u.UserID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsAdministrator: u.IsAdministrator,
	}
}

// PublicUsers sanitizes a list of accounts.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
