package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// StatusResponse is the common payload shape the storefront expects: a
// capitalised Status discriminator plus a human-readable message.
type StatusResponse struct {
	Status  string `json:"Status"`
	Message string `json:"message"`
}

// ResultResponse wraps a query result.
type ResultResponse struct {
	Status string `json:"Status"`
	Result any    `json:"Result"`
}

// ErrorResponse is the payload for token and authorization failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeStatus(w http.ResponseWriter, httpStatus int, status, message string) {
	writeJSON(w, httpStatus, StatusResponse{Status: status, Message: message})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeAndValidate decodes a JSON body into v and runs struct validation.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return errors.New("missing or invalid fields")
	}
	return nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
