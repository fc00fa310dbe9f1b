// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MinimumAge is the youngest age allowed to hold an account.
const MinimumAge = 13

// MaximumAge is the upper bound accepted for the age form field.
const MaximumAge = 120

// Account represents one registered user of the client.
//
// The JSON layout is the persisted layout: accounts are stored as a JSON array
// under the accounts key and a single snapshot under the session key.
type Account struct {
	// ID is assigned once on registration and never changes afterwards.
	ID string `json:"id"`

	// Username is the display handle shown next to videos and on the profile.
	Username string `json:"username"`

	// Email is unique among all accounts and is the login identifier.
	// Matching is exact and case-sensitive.
	Email string `json:"email"`

	// Avatar is either an image URL or an embedded data URI.
	Avatar string `json:"avatar"`

	// Age is at least MinimumAge at creation time.
	Age int `json:"age"`

	Bio string `json:"bio"`

	Followers int `json:"followers"`
	Following int `json:"following"`

	// Likes is the cumulative number of likes received by the account's videos.
	Likes int `json:"likes"`

	IsVerified bool `json:"isVerified"`

	// IsLoggedIn is flipped on login and logout.
	IsLoggedIn bool `json:"isLoggedIn"`

	CreatedAt time.Time `json:"createdAt"`
}

// RegistrationForm carries raw register form values exactly as the user typed
// them. Age is kept as text so that missing and non-numeric input can be
// reported separately from out-of-range values.
type RegistrationForm struct {
	Username string
	Email    string
	Password string
	Age      string
	Avatar   string
}

// ProfileUpdate describes a profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string
	Bio      *string
	Avatar   *string
}
