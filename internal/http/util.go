package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/brandonbohn/adebackend/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBodyJSON decodes the request body into out. An empty body leaves out untouched.
func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// decodeBody wraps readBodyJSON and turns malformed JSON into a validation error.
func decodeBody(r *http.Request, out any) error {
	if err := readBodyJSON(r, maxBodyBytes, out); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return service.ValidationError(typeErr.Field, "Invalid value for "+typeErr.Field)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return service.ValidationError("", "Request body must be valid JSON")
		default:
			return service.ValidationError("", "Unable to read request body")
		}
	}
	return nil
}

// parseAmount accepts a JSON number or a numeric string. Absent or null yields nil.
func parseAmount(raw json.RawMessage) (*float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil, service.ValidationError("amount", "Amount must be a number")
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, nil
		}
		s = str
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, service.ValidationError("amount", "Amount must be a number")
	}
	return &f, nil
}
