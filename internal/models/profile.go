package models

import "time"

// UserProfile carries the per-account economy state: hearts are the attempt
// budget, rubies the reward currency, streak the consecutive-day counter.
// Hearts never exceed the configured cap; rubies and streak never go negative.
type UserProfile struct {
	UserID         int64     `json:"user_id"`
	Hearts         int       `json:"hearts"`
	Rubies         int       `json:"rubies"`
	Streak         int       `json:"streak"`
	Certificate    bool      `json:"certificate"`
	ProfileURL     string    `json:"profile_url,omitempty"`
	LastActivityAt time.Time `json:"last_activity_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HeartPackage is a purchasable heart refill offered by the shop.
type HeartPackage struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	HeartsAmount int    `json:"hearts_amount"`
	RubyCost     int    `json:"ruby_cost"`
}
