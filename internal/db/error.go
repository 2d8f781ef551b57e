package db

import (
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error code references: https://www.mongodb.com/docs/manual/reference/error-codes/
const (
	writeConflictCode      = 112
	transactionAbortedCode = 251
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// InvalidPaginationTokenError is an error type for invalid pagination token errors
type InvalidPaginationTokenError struct {
	Message string
}

func (e *InvalidPaginationTokenError) Error() string {
	return e.Message
}

func IsInvalidPaginationTokenError(err error) bool {
	var target *InvalidPaginationTokenError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsWriteConflictError(err error) bool {
	return hasCommandErrorCode(err, writeConflictCode)
}

func IsTransactionAbortedError(err error) bool {
	return hasCommandErrorCode(err, transactionAbortedCode)
}

func hasCommandErrorCode(err error, code int32) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		log.Debug().Int32("code", cmdErr.Code).Msg("checking mongo command error")
		return cmdErr.Code == code
	}

	var cmdErrPtr *mongo.CommandError
	if errors.As(err, &cmdErrPtr) && cmdErrPtr != nil {
		log.Debug().Int32("code", cmdErrPtr.Code).Msg("checking mongo command error")
		return cmdErrPtr.Code == code
	}

	return false
}

// wrapDuplicateKey turns a mongo duplicate key write error into a
// DuplicateKeyError so callers can map it to a client error.
func wrapDuplicateKey(err error, key, message string) error {
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Key: key, Message: message}
	}
	return err
}
