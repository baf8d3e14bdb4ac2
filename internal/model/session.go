package model

// User is the profile the login endpoint returns next to the token.
type User struct {
	ID        ID     `json:"id" yaml:"id"`
	Role      string `json:"role" yaml:"role"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	ImagePath string `json:"image_path" yaml:"image_path"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Token string `json:"token" yaml:"token"`
	User  *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

// Profile is the session as persisted on the client.
type Profile struct {
	Token     string `json:"token" yaml:"token"`
	Role      string `json:"role" yaml:"role"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	ID        string `json:"id" yaml:"id"`
	ImagePath string `json:"image_path" yaml:"image_path"`
}

// LoggedIn reports whether the profile carries a token.
func (p Profile) LoggedIn() bool {
	return p.Token != ""
}
