package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// CustomerProfile is owned 1:1 by a CUSTOMER user; created only inside the
// registration transaction.
type CustomerProfile struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"uniqueIndex;not null" json:"userId"`

	FullName     string     `gorm:"size:100;not null" json:"fullName"`
	Phone        string     `gorm:"size:15;not null" json:"phone"`
	AddressLine1 string     `gorm:"size:255" json:"addressLine1,omitempty"`
	AddressLine2 string     `gorm:"size:255" json:"addressLine2,omitempty"`
	City         string     `gorm:"size:100" json:"city,omitempty"`
	State        string     `gorm:"size:100" json:"state,omitempty"`
	Pincode      string     `gorm:"size:10" json:"pincode,omitempty"`
	Country      string     `gorm:"size:100;default:India" json:"country,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       Gender     `gorm:"size:10" json:"gender,omitempty"`

	ProfileImageURL string `gorm:"type:text" json:"profileImageUrl,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CustomerProfile) TableName() string { return "customer_profiles" }

// ProviderProfile is owned 1:1 by a PROVIDER user. IsVerified tracks manual
// business vetting and is independent of the user's email verification;
// rating/availability fields are mutated by other services after onboarding.
type ProviderProfile struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"uniqueIndex;not null" json:"userId"`

	BusinessName    string `gorm:"size:200;not null" json:"businessName"`
	Phone           string `gorm:"size:15" json:"phone"`
	Specialization  string `gorm:"size:100;not null" json:"specialization"`
	ExperienceYears int    `gorm:"not null;default:0" json:"experienceYears"`
	Bio             string `gorm:"type:text" json:"bio,omitempty"`

	AddressLine1 string `gorm:"size:255" json:"addressLine1,omitempty"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	State        string `gorm:"size:100" json:"state,omitempty"`
	Pincode      string `gorm:"size:10" json:"pincode,omitempty"`

	ProfileImageURL string `gorm:"type:text" json:"profileImageUrl,omitempty"`
	DocumentURLs    string `gorm:"type:text" json:"documentUrls,omitempty"`

	IsVerified        bool       `gorm:"not null;default:false" json:"isVerified"`
	IsAvailable       bool       `gorm:"not null;default:true" json:"isAvailable"`
	AverageRating     float64    `gorm:"type:decimal(3,2);default:0" json:"averageRating"`
	TotalReviews      int        `gorm:"not null;default:0" json:"totalReviews"`
	CompletedBookings int        `gorm:"not null;default:0" json:"completedBookings"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ProviderProfile) TableName() string { return "provider_profiles" }
