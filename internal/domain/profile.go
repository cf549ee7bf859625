package domain

import "time"

// UserProfile is the only durable per-visitor record: contact and
// address details used to prefill checkout.
type UserProfile struct {
	CustomerID int64     `json:"customer_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address1   string    `json:"address_1"`
	Address2   string    `json:"address_2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Postcode   string    `json:"postcode"`
	Country    string    `json:"country"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
