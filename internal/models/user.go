package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the account role: mentors are solicited, mentees solicit
type Role string

const (
	RoleMentor Role = "Mentor"
	RoleMentee Role = "Mentee"
)

// AuthProvider identifies how the account authenticates
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents one account stored in the users collection.
// Password holds the bcrypt hash and is present only for local accounts.
// ResetPasswordToken holds the sha256 hex of an issued reset token; both reset
// fields are set only during an active reset window.
type User struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"`
	FirstName            string        `bson:"firstName"`
	LastName             string        `bson:"lastName"`
	Email                string        `bson:"email"`
	PhoneNumber          string        `bson:"phoneNumber"`
	Batch                string        `bson:"batch"`
	Department           string        `bson:"department"`
	Campus               string        `bson:"campus"`
	Role                 Role          `bson:"role"`
	Password             string        `bson:"password,omitempty"`
	AuthProvider         AuthProvider  `bson:"authProvider"`
	GoogleID             *string       `bson:"googleId,omitempty"`
	About                string        `bson:"about,omitempty"`
	CGPA                 *float64      `bson:"cgpa,omitempty"`
	Subjects             []string      `bson:"subjects,omitempty"`
	ResetPasswordToken   *string       `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires *time.Time    `bson:"resetPasswordExpires,omitempty"`
	CreatedAt            time.Time     `bson:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt"`
}

// IsSearchable reports whether the mentor profile is complete enough to be
// returned by mentor search: about, cgpa and subjects must all be non-empty.
func (u *User) IsSearchable() bool {
	return u.Role == RoleMentor && u.About != "" && u.CGPA != nil && len(u.Subjects) > 0
}

// PublicUser is the account representation returned to clients. It never
// carries credentials or reset token state.
type PublicUser struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Batch       string   `json:"batch"`
	Department  string   `json:"department"`
	Campus      string   `json:"campus"`
	Role        Role     `json:"role"`
	About       string   `json:"about"`
	CGPA        *float64 `json:"cgpa"`
	Subjects    []string `json:"subjects"`
}

// Public converts a stored user into its client-facing representation
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID.Hex(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Batch:       u.Batch,
		Department:  u.Department,
		Campus:      u.Campus,
		Role:        u.Role,
		About:       u.About,
		CGPA:        u.CGPA,
		Subjects:    u.Subjects,
	}
}

// UserSummary is the profile excerpt attached to connection request listings
type UserSummary struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Batch      string   `json:"batch"`
	CGPA       *float64 `json:"cgpa"`
	Subjects   []string `json:"subjects"`
}

// Summary converts a stored user into the excerpt used in request listings
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID.Hex(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Department: u.Department,
		Batch:      u.Batch,
		CGPA:       u.CGPA,
		Subjects:   u.Subjects,
	}
}

// MentorProfile is the mentor-only profile section
type MentorProfile struct {
	About    string   `json:"about"`
	CGPA     *float64 `json:"cgpa"`
	Subjects []string `json:"subjects"`
}

// Profile returns the mentor-only profile fields
func (u *User) Profile() MentorProfile {
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return MentorProfile{
		About:    u.About,
		CGPA:     u.CGPA,
		Subjects: subjects,
	}
}

// SearchFilters narrows the searchable-mentors query
type SearchFilters struct {
	Search     string
	MinCGPA    *float64
	Department string
}
