package entity

import "time"

// Roles a user can hold. Only admins may mutate posts.
const (
	RoleStandard = "STANDARD"
	RoleAdmin    = "ADMIN"
)

// User is the aggregate root for the credential store.
// Password holds a bcrypt hash; it is empty for Google-only accounts.
// GoogleID is the verified OAuth subject id, empty when the account was
// never linked. At least one of the two is always set.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	GoogleID  string
	Role      string
	CreatedAt time.Time
}
