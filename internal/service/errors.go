package service

import (
	"errors"
	"fmt"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrNoActiveIntent       = errors.New("no active intent")
	ErrMatchNotFound        = errors.New("match not found")
	ErrIntroductionNotFound = errors.New("introduction request not found")

	ErrUnauthorized = errors.New("not allowed to act on this resource")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTarget is an ErrInvalidInput raised for self-directed requests.
	ErrInvalidTarget = fmt.Errorf("%w: cannot send an introduction request to yourself", ErrInvalidInput)

	ErrDuplicatePending       = errors.New("a pending introduction request already exists for this member")
	ErrNoEligibleIntent       = errors.New("no active, consenting, analyzed intent to match from")
	ErrMatchNotPending        = errors.New("match is no longer pending")
	ErrIntroductionNotPending = errors.New("introduction request is no longer pending")
	ErrOperationInProgress    = errors.New("another operation for this member is in progress")
	ErrOnboardingIncomplete   = errors.New("onboarding is incomplete")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
