package models

// User is an account that can own tickets. The password column holds a
// bcrypt hash and is never serialized.
type User struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}
