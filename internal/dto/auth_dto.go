package dto

// LoginForm is the credential form posted from /login.
type LoginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
