package domain

import (
	"errors"
	"fmt"
)

// ErrSuperseded результат запроса отброшен: пока он выполнялся, начался более новый
var ErrSuperseded = errors.New("request superseded by a newer one")

// NetworkError ответ от API не получен
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError API ответил ошибкой
type UpstreamError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.Status, e.StatusText)
}
