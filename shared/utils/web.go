package utils

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
)

const maxMultipartMemory = 32 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FormDecoder is implemented by request bodies that may also arrive as an
// HTML form submission.
type FormDecoder interface {
	DecodeForm(form url.Values) error
}

// WriteErrorAndStatusCode maps the error taxonomy onto HTTP. Only the
// generic text of each category reaches the caller.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status, message := errorResponse(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed", "status", status, "error", err)
	}
	http.Error(w, message, status)
}

func errorResponse(err error) (int, string) {
	if e, ok := errors.As[*errors.ValidationError](err); ok {
		return http.StatusBadRequest, e.Error()
	}
	if e, ok := errors.As[*errors.NotFoundError](err); ok {
		return http.StatusNotFound, e.Error()
	}
	if e, ok := errors.As[*errors.CsrfError](err); ok {
		return http.StatusForbidden, e.Error()
	}
	if e, ok := errors.As[*errors.AuthorizationError](err); ok {
		return http.StatusForbidden, e.Error()
	}
	if e, ok := errors.As[*errors.ConflictError](err); ok {
		return http.StatusConflict, e.Error()
	}
	if errors.Is[*errors.DependencyError](err) {
		return http.StatusServiceUnavailable, "Service temporarily unavailable, try again"
	}
	if e, ok := errors.As[*errors.ErrorWithStatusCode](err); ok {
		return e.StatusCode, e.Message
	}
	// default error is 500
	return http.StatusInternalServerError, "Internal server error"
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// IsFormRequest reports whether the body is an HTML form submission.
func IsFormRequest(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// ParseForm parses urlencoded and multipart bodies alike. Safe to call twice.
func ParseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if r.MultipartForm != nil {
			return nil
		}
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}

// DecodeValidate reads a JSON or form body into body and validates it.
func DecodeValidate(r *http.Request, body any) error {
	if IsFormRequest(r) {
		decoder, ok := body.(FormDecoder)
		if !ok {
			return errors.NewValidation("", "Form submissions are not supported here")
		}
		if err := ParseForm(r); err != nil {
			return bodyError(err, "Body is invalid form")
		}
		if err := decoder.DecodeForm(r.PostForm); err != nil {
			return err
		}
	} else if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return bodyError(err, "Body is invalid json")
	}
	return Validate(body)
}

func Validate(body any) error {
	if err := validate.Struct(body); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewValidation(fe.Field(), describe(fe))
		}
		return errors.NewValidation("", "Invalid request")
	}
	return nil
}

func bodyError(err error, message string) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.NewValidation("", "Request body too large")
	}
	logger.Log.Debug("failed to decode body", "error", err)
	return errors.NewValidation("", message)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}
