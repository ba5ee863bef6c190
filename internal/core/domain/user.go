package domain

const (
	RoleAdmin        = "admin"
	RoleStandardUser = "standard-user"
)

// User models an operator account. Password holds the bcrypt hash; it is
// part of the snapshot document but must never leave the process through
// the API — handlers return PublicUser instead.
type User struct {
	ID       int64  `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
	Role     string `json:"role" bson:"role"`
	Name     string `json:"name" bson:"name"`
	Language string `json:"language,omitempty" bson:"language,omitempty"`
}

// PublicUser is the outward shape of a User, with the secret stripped.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

// Public strips the password hash for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Language: u.Language,
	}
}

// Actor is the verified identity claim attached to every authenticated
// request: the payload of the signed token, nothing more.
type Actor struct {
	ID   int64
	Role string
	Name string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
