package httpapi

import (
	"net/http"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

// DataResult success envelope for reads
type DataResult[T any] struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    T    `json:"data"`
}

// MessageResult success envelope for mutations that echo a record
type MessageResult[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ErrorBody classified failure sent to clients
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResult failure envelope
type ErrorResult struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func Ok[T any](data T) DataResult[T] {
	return DataResult[T]{Success: true, Data: data}
}

// List never serializes a nil slice as null.
func List[T any](items []T) DataResult[[]T] {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return DataResult[[]T]{Success: true, Count: &n, Data: items}
}

func Done[T any](message string, data T) MessageResult[T] {
	return MessageResult[T]{Success: true, Message: message, Data: data}
}

func Fail(code, message, field string) ErrorResult {
	return ErrorResult{Error: ErrorBody{Code: code, Message: message, Field: field}}
}

func statusFor(code string) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError classifies err and writes the failure envelope. Server errors
// are logged with the underlying cause; the client only sees the message.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	se := service.AsError(err)
	status := statusFor(se.Code)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
	}
	writeJSON(w, status, Fail(se.Code, se.Message, se.Field))
}
