package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/tendant/learning-tracks/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so violations match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON decodes the body into dst and checks its validate tags
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return &domain.ValidationError{Violations: []domain.Violation{
			{Field: "body", Message: "request body must be valid JSON"},
		}}
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return toValidationError(err, "")
	}
	return nil
}

// validateVar checks a single value, reporting violations under field
func validateVar(field string, v interface{}, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return toValidationError(err, field)
	}
	return nil
}

func toValidationError(err error, field string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		name := fieldPath(fe, field)
		out.Violations = append(out.Violations, domain.Violation{Field: name, Message: violationMessage(name, fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace, so "req.tracks[0]"
// becomes "tracks[0]". Var checks have no namespace and use fallback.
func fieldPath(fe validator.FieldError, fallback string) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	if fallback != "" {
		if ns != "" && strings.HasPrefix(ns, "[") {
			return fallback + ns
		}
		return fallback
	}
	return ns
}

func violationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Violations: []domain.Violation{
			{Field: "id", Message: "id must be a positive integer"},
		}}
	}
	return id, nil
}

type listQuery struct {
	Query      string `json:"q"`
	PageNumber *int   `json:"pageNumber" validate:"omitnil,min=0"`
	PageSize   *int   `json:"pageSize" validate:"omitnil,min=1"`
}

// parseListQuery reads q, pageNumber and pageSize. Page numbers are zero-based.
func parseListQuery(r *http.Request) (listQuery, error) {
	q := r.URL.Query()
	lq := listQuery{Query: q.Get("q")}

	var violations []domain.Violation
	parse := func(name string) *int {
		raw := q.Get(name)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, domain.Violation{Field: name, Message: fmt.Sprintf("%s must be an integer", name)})
			return nil
		}
		return &n
	}
	lq.PageNumber = parse("pageNumber")
	lq.PageSize = parse("pageSize")
	if len(violations) > 0 {
		return lq, &domain.ValidationError{Violations: violations}
	}
	return lq, validateStruct(lq)
}
