package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrTestInactive  = errors.New("test is not active")
	ErrAttemptExists = errors.New("test already attempted with different answers")
	ErrReviewExists  = errors.New("an open or approved review request already exists for this question")
)

// notFound maps gorm's missing-row error onto ErrNotFound and leaves any
// other error unchanged.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
