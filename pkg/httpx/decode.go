package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// RequestError is returned by DecodeJSON when the client sent a body that
// cannot be used. Message is safe to show to the caller.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", validateNotBlank)
}

// validateNotBlank fails strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// DecodeJSON reads a JSON object from r into dst and runs the struct's
// `validate` tags. Client mistakes come back as *RequestError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return &RequestError{Message: "request body is required"}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &RequestError{Message: fieldMessage(verrs[0])}
		}
		return fmt.Errorf("httpx: validate: %w", err)
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return &RequestError{Message: "request body is required"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &RequestError{Message: "request body is not valid JSON"}
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return &RequestError{Message: fmt.Sprintf("%s has the wrong type", typeErr.Field)}
		}
		return &RequestError{Message: "request body must be a JSON object"}
	case errors.As(err, &maxErr):
		return &RequestError{Message: "request body is too large"}
	default:
		return &RequestError{Message: "request body is not valid JSON"}
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "notblank":
		return fe.Field() + " must not be blank"
	default:
		return fe.Field() + " is invalid"
	}
}
