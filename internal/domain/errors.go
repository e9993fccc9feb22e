package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoParticipants = errors.New("expense has no participants")
)

// ValidationError - нарушение бизнес-инварианта с человекочитаемым текстом.
// Разворачивается в ErrValidation, чтобы транспорт различал класс ошибки.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// SplitMismatchError возвращается когда распределенные доли не сходятся с
// итоговой суммой расхода. Такая ошибка откатывает всю операцию целиком.
type SplitMismatchError struct {
	Expected string
	Got      string
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("sum of split amounts (%s) does not match the expense total (%s)", e.Got, e.Expected)
}

func (e *SplitMismatchError) Unwrap() error {
	return ErrValidation
}
