package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translate maps gorm's not-found error to the given domain sentinel.
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// translateDuplicate maps a unique-index violation to the given domain
// sentinel. Requires the connection to be opened with TranslateError.
func translateDuplicate(err, duplicate error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	return err
}
