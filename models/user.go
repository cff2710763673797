package models

import "time"

// UserProfile is the single locally persisted user record. The store holds
// at most one of these at a time; registering a new account overwrites any
// existing record. The password is stored and compared as a plain string;
// that is the product's single-device demo contract.
type UserProfile struct {
	Name        string    `json:"name" bson:"name"`
	Username    string    `json:"username" bson:"username"`
	Email       string    `json:"email" bson:"email"`
	Phone       string    `json:"phone" bson:"phone"`
	Password    string    `json:"password" bson:"password"`
	IsActivated bool      `json:"isActivated" bson:"isActivated"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Complete reports whether all registration fields are present. Presence
// only; the product performs no format validation.
func (p UserProfile) Complete() bool {
	return p.Name != "" && p.Username != "" && p.Email != "" &&
		p.Phone != "" && p.Password != ""
}
