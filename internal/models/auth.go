package models

// SignupRequest is the payload for local account creation
type SignupRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
	Batch       string `json:"batch" binding:"required,oneof=F22 F23 F24 F25"`
	Department  string `json:"department" binding:"required,oneof=CS IT SE DS"`
	Campus      string `json:"campus" binding:"required,oneof=New Old"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	Role        string `json:"role" binding:"required,oneof=Mentor Mentee"`
}

// LoginRequest is the payload for local login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful signup or login
type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// GoogleVerifyRequest carries the raw Google ID token
type GoogleVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// GoogleData is the staged identity returned when no account exists yet
type GoogleData struct {
	GoogleID  string `json:"googleId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GoogleVerifyResponse is returned by the verify endpoint. Exactly one of
// Token/User (existing account) or GoogleData (onboarding needed) is set.
type GoogleVerifyResponse struct {
	Success    bool        `json:"success"`
	UserExists bool        `json:"userExists"`
	Message    string      `json:"message"`
	Token      string      `json:"token,omitempty"`
	User       *PublicUser `json:"user,omitempty"`
	GoogleData *GoogleData `json:"googleData,omitempty"`
}

// GoogleCompleteRequest finishes onboarding for a verified Google identity
type GoogleCompleteRequest struct {
	GoogleID    string `json:"googleId" binding:"required"`
	Email       string `json:"email" binding:"required,email,max=255"`
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
	Batch       string `json:"batch" binding:"required,oneof=F22 F23 F24 F25"`
	Department  string `json:"department" binding:"required,oneof=CS IT SE DS"`
	Campus      string `json:"campus" binding:"required,oneof=New Old"`
	Role        string `json:"role" binding:"required,oneof=Mentor Mentee"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow. The token itself
// travels in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateProfileRequest overwrites the mentor-only profile fields
type UpdateProfileRequest struct {
	About    string   `json:"about" binding:"max=10000"`
	CGPA     *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=4"`
	Subjects []string `json:"subjects" binding:"omitempty,dive,max=100"`
}
