// Package services holds the business logic between the HTTP handlers and
// the storage backends: catalog management, site content, the contact-form
// inbox, exchange rates, and admin authentication.
//
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
// Translation into user-facing messages and HTTP status codes happens at
// the handler layer.
package services

import "errors"

var (
	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCategory is returned when a category path segment is not one
	// of the known product categories.
	ErrInvalidCategory = errors.New("invalid product category")

	// ErrMessageNotFound indicates that the requested contact message does
	// not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrInvalidFlag is returned when a read-status value is neither "true"
	// nor "false".
	ErrInvalidFlag = errors.New("flag must be \"true\" or \"false\"")

	// ErrRateNotFound indicates that no exchange rate is stored for the
	// requested currency.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrInvalidCredentials is returned when a login attempt fails. The same
	// error covers an unknown username and a wrong password so responses do
	// not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when creating a user whose username is
	// already registered.
	ErrUsernameTaken = errors.New("username already taken")
)
