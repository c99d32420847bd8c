package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrPositionNotFound  = errors.New("position not found")
	ErrSkillNotFound     = errors.New("skill not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrCandidateNotFound = errors.New("succession candidate not found")

	// ErrConflict reports a lost optimistic-concurrency race: another
	// transition on the same request committed first.
	ErrConflict = errors.New("concurrent update conflict")
)
