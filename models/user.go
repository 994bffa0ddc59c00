package models

import "time"

// Roles assignable to a user account. RoleAdmin unlocks the back-office API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a game account used for authentication and authorization.
// Sensitive fields (password hash, security answer) must never be exposed
// outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique account login. Letters, digits and underscores only.
	Username string `json:"username"`

	// Email is the unique contact address used for welcome and payment mail.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the account password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// SecurityQuestion and SecurityAnswer back the account-recovery flow.
	// The answer is stored verbatim and never serialized.
	SecurityQuestion string `json:"-"`
	SecurityAnswer   string `json:"-"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`

	// Credits is the purchasable in-game currency balance.
	Credits int64 `json:"credits"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the account may access the admin back-office.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
