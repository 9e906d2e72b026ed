package handler

// Request schemas for the users service. The password tag is the custom
// format policy registered in NewValidator.

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN PATIENT LAB_TECH DOCTOR"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name    string `json:"name"    validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Role    string `json:"role"    validate:"required,oneof=ADMIN PATIENT LAB_TECH DOCTOR"`
	Active  bool   `json:"active"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type recoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// loginResponse is the payload inside the SUCCESS envelope on login.
type loginResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

// recoveryResponse carries the one-time reset token. Delivery by email is out
// of scope; the token is handed back to the caller.
type recoveryResponse struct {
	RecoveryToken string `json:"recovery_token"`
}
