// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vibeclip validators, services and TUI.
//
// All Msg* constants are human-readable strings shown to the user under a
// form field or in the status bar. Keeping them in one place ensures
// consistent wording throughout the client.
package app

// Registration and profile form messages.
const (
	MsgUsernameTooShort = "username must be at least 3 characters"
	MsgInvalidEmail     = "invalid email address"
	MsgPasswordTooShort = "password must be at least 6 characters"
	MsgAgeRequired      = "age is required"

	// MsgAgeTooYoung is distinct from MsgAgeInvalid: the minimum age is a
	// hard rule, not a typo.
	MsgAgeTooYoung = "you must be at least 13 years old"
	MsgAgeInvalid  = "invalid age"

	MsgBioTooLong = "bio must be at most 160 characters"
)

// Session messages.
const (
	// MsgEmailAlreadyRegistered is attached to the email field when a
	// registration reuses a stored address.
	MsgEmailAlreadyRegistered = "this email is already registered"

	// MsgEmailNotRegistered is attached to the email field when login finds
	// no account.
	MsgEmailNotRegistered = "this email is not registered"

	MsgLoginRequired = "log in to like and save"
	MsgStorageError  = "could not save your changes, try again"
)

// Status bar messages.
const (
	MsgLinkCopied    = "link copied to clipboard"
	MsgCopyFailed    = "could not copy link"
	MsgWelcomeBack   = "welcome back, %s"
	MsgWelcome       = "welcome, %s"
	MsgLoggedOut     = "logged out"
	MsgProfileSaved  = "profile saved"
	MsgNothingHere   = "nothing here yet"
	MsgCatalogFailed = "could not load the catalog"
)
