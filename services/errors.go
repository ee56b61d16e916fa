// services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type ErrorKind string

const (
	KindUnauthorized          ErrorKind = "unauthorized"
	KindForbidden             ErrorKind = "forbidden"
	KindNotFound              ErrorKind = "not_found"
	KindDuplicateEmail        ErrorKind = "duplicate_email"
	KindDuplicateUsername     ErrorKind = "duplicate_username"
	KindCoachAlreadyHasTeam   ErrorKind = "coach_already_has_team"
	KindTeamFull              ErrorKind = "team_full"
	KindPlayerAlreadyAssigned ErrorKind = "player_already_assigned"
	KindValidation            ErrorKind = "validation_error"
)

// Error is the only error type a domain operation returns. Detail is safe
// to show to the caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind, and on detail when the target carries one, so both
// errors.Is(err, ErrNotFound) and errors.Is(err, ErrTeamNotFound) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Detail == "" || t.Detail == e.Detail)
}

var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Detail: "Authentication credentials were not provided."}
	ErrInvalidToken = &Error{Kind: KindUnauthorized, Detail: "Invalid token."}
	ErrForbidden    = &Error{Kind: KindForbidden, Detail: "You do not have permission to perform this action."}

	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrUserNotFound   = &Error{Kind: KindNotFound, Detail: "User not found."}
	ErrTeamNotFound   = &Error{Kind: KindNotFound, Detail: "Team not found."}
	ErrPlayerNotFound = &Error{Kind: KindNotFound, Detail: "Player not found."}
	ErrGameNotFound   = &Error{Kind: KindNotFound, Detail: "Game not found."}

	ErrDuplicateEmail        = &Error{Kind: KindDuplicateEmail, Detail: "Email is already in use."}
	ErrDuplicateUsername     = &Error{Kind: KindDuplicateUsername, Detail: "Username is already in use."}
	ErrCoachAlreadyHasTeam   = &Error{Kind: KindCoachAlreadyHasTeam, Detail: "Coach already has a team."}
	ErrTeamFull              = &Error{Kind: KindTeamFull, Detail: "This team already has 10 players."}
	ErrPlayerAlreadyAssigned = &Error{Kind: KindPlayerAlreadyAssigned, Detail: "This user is already assigned to a team."}

	ErrValidation         = &Error{Kind: KindValidation}
	ErrInvalidCredentials = &Error{Kind: KindValidation, Detail: "Unable to log in with provided credentials."}
)

func validationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

// storeError turns anything that is not already a domain error into the
// generic validation failure, logging the cause.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return err
	}
	log.Error().Err(err).Str("op", op).Msg("persistence failure")
	return &Error{Kind: KindValidation, Detail: op + " failed.", Err: err}
}

// KindOf reports the kind of err, treating foreign errors as validation
// failures.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindValidation
}
