package domain

import "time"

type ProviderStatus string

const (
	StatusPending  ProviderStatus = "pending"
	StatusApproved ProviderStatus = "approved"
	StatusRejected ProviderStatus = "rejected"
)

func (s ProviderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryOnline  DeliveryMethod = "online"
	DeliveryOffline DeliveryMethod = "offline"
	DeliveryBoth    DeliveryMethod = "both"
)

func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryOnline, DeliveryOffline, DeliveryBoth:
		return true
	}
	return false
}

// ServiceProvider is a provider application row. Image fields hold paths
// inside the images bucket; multi-file fields hold ", "-joined path lists.
type ServiceProvider struct {
	Id                string
	UserId            string
	ServiceName       string
	Slug              *string
	ServiceCategoryId string
	GovernorateId     string
	YearsOfExperience *int
	DeliveryMethod    *DeliveryMethod
	Description       *string
	Bio               *string
	FacebookURL       *string
	InstagramURL      *string
	WhatsappURL       *string
	VideoURL          *string
	Keywords          *string
	Notes             *string
	Status            ProviderStatus
	LogoImage         *string
	IdCardFrontImage  *string
	IdCardBackImage   *string
	CertificateImages *string
	DocumentList      *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time

	// Joined fields for list/detail views.
	OwnerFirstName  *string
	OwnerLastName   *string
	OwnerEmail      *string
	OwnerPhone      *string
	OwnerAvatar     *string
	GovernorateName *string
	CategoryName    *string
}
