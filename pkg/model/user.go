package model

// User is a registered guest. The password hash is never serialized.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserPatch lists the fields of a partial profile update. Nil fields are
// left unchanged; set fields are validated the same way as at registration.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}
