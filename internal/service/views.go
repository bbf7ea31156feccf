package service

import (
	"time"

	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
)

// ProfileView is the sanitized projection returned to clients; it never
// carries the password hash or any server-side token.
type ProfileView struct {
	ID            int64         `json:"id"`
	Email         string        `json:"email"`
	Role          domain.Role   `json:"role"`
	Status        domain.Status `json:"status"`
	EmailVerified bool          `json:"emailVerified"`

	FullName        string `json:"fullName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	BusinessName    string `json:"businessName,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	ExperienceYears *int   `json:"experienceYears,omitempty"`
	IsVerified      *bool  `json:"isVerified,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType"`
	UserID    int64       `json:"userId"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ExpiresIn int64       `json:"expiresIn"`
}

func baseView(u *domain.User) ProfileView {
	return ProfileView{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func customerView(u *domain.User) *ProfileView {
	v := baseView(u)
	if p := u.CustomerProfile; p != nil {
		v.FullName = p.FullName
		v.Phone = p.Phone
		v.City = p.City
		v.State = p.State
		v.ProfileImageURL = p.ProfileImageURL
	}
	return &v
}

func providerView(u *domain.User) *ProfileView {
	v := baseView(u)
	if p := u.ProviderProfile; p != nil {
		v.FullName = p.BusinessName
		v.Phone = p.Phone
		v.City = p.City
		v.State = p.State
		v.ProfileImageURL = p.ProfileImageURL
		v.BusinessName = p.BusinessName
		v.Specialization = p.Specialization
		v.ExperienceYears = &p.ExperienceYears
		v.IsVerified = &p.IsVerified
	}
	return &v
}

// viewOf selects the mapping by role; admins carry no profile record.
func viewOf(u *domain.User) *ProfileView {
	switch u.Role {
	case domain.RoleCustomer:
		return customerView(u)
	case domain.RoleProvider:
		return providerView(u)
	default:
		v := baseView(u)
		return &v
	}
}
