package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
	"github.com/dkoval-dev/goblog/internal/logger"
)

// errorResponse is the error envelope every failed request gets:
// {"status":"error","msg":...} plus "login" on already-logged-in conflicts.
type errorResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Login  string `json:"login,omitempty"`
}

// WriteJSON writes v with the given status code. Encoding failures are logged
// and downgraded to a plain 500 since headers may already be out the door.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteError translates err into the HTTP error envelope. Typed errors carry
// their own status and message; anything else is an internal error whose
// detail is logged server-side and never leaked to the client.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		WriteJSON(w, e.StatusCode, errorResponse{Status: "error", Msg: e.Message, Login: e.Login})
		return
	}
	logger.Log.Error("internal error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Msg: "Internal server error"})
}

// DecodeValidate decodes a JSON request body into body and runs struct-tag
// validation on it. Validation failures are flattened into a single
// "Invalid request: ..." message listing every failed field.
func DecodeValidate(r io.ReadCloser, body interface{}) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid request: body is not valid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fieldErrorMessage(fe))
			}
			return &internal_errors.ErrorWithStatusCode{Message: "Invalid request: " + strings.Join(msgs, "; "), StatusCode: http.StatusBadRequest}
		}
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid request", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Decode decodes a JSON request body without running validation.
func Decode(r io.ReadCloser, body interface{}) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid request: body is not valid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be not more than %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
