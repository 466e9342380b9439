package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Club errors
var (
	ErrClubNotFound      = errors.New("club not found")
	ErrClubAlreadyExists = errors.New("club already exists")
	ErrClubHasManager    = errors.New("club already has a manager")
)

// Event errors
var (
	ErrEventNotFound           = errors.New("event not found")
	ErrEventFull               = errors.New("event is full")
	ErrRegistrationClosed      = errors.New("registration deadline has passed")
	ErrAlreadyRegistered       = errors.New("already registered for this event")
	ErrNotRegistered           = errors.New("not registered for this event")
	ErrDeadlineAfterEvent      = errors.New("registration deadline must not be after the event date")
	ErrCapacityBelowRegistered = errors.New("capacity cannot drop below current registrations")
)

// Membership errors
var (
	ErrMemberNotFound      = errors.New("member record not found")
	ErrAlreadyRequested    = errors.New("join request already exists for this club")
	ErrRequestNotPending   = errors.New("join request is not pending")
	ErrInvalidMemberRole   = errors.New("invalid member role")
	ErrInvalidMemberStatus = errors.New("invalid member status")
)
