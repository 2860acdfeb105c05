// Package entity defines the form structures bound by the web layer.
package entity

// RegisterForm carries the registration submission. Password is optional;
// when present it must match Confirm before it is hashed and stored.
type RegisterForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
	Csrf     string `json:"csrf_token" form:"csrf_token"`
}

// Fields returns the submitted values keyed by field name for the generic
// required-fields checker.
func (f *RegisterForm) Fields() map[string]string {
	return map[string]string{
		"name":  f.Name,
		"email": f.Email,
		"role":  f.Role,
	}
}

// LoginForm carries the login submission.
type LoginForm struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Csrf  string `json:"csrf_token" form:"csrf_token"`
}

func (f *LoginForm) Fields() map[string]string {
	return map[string]string{
		"name":  f.Name,
		"email": f.Email,
	}
}
