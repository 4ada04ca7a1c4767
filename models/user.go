package models

import "time"

// User is an account held by the contract stub backend.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	State        string    `bson:"state" json:"state"`
	District     string    `bson:"district" json:"district"`
	Village      string    `bson:"village" json:"village"`
	IsVerified   bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SignupSession is a registration waiting for OTP verification, kept in the
// OTP cache under the signup cookie id.
type SignupSession struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"passwordHash"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Village      string    `json:"village"`
	OTP          string    `json:"otp"`
	OTPSentAt    time.Time `json:"otpSentAt"`
	OTPSendCount int       `json:"otpSendCount"`
}

// DisplayName is first and last name joined.
func (u User) DisplayName() string {
	return JoinName(u.FirstName, u.LastName)
}
