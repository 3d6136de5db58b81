package commerce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// validate is the shared validator instance. Struct tags describe per-field
// shape rules; cross-field rules live on the input types' validateRules
// methods so every violation is collected before anything is rejected.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	return v
}

// checkStruct runs tag validation and converts the result into the domain's
// ValidationError, one entry per failing field. validator/v10 already reports
// every violation in one pass, which is exactly the contract callers rely on.
func checkStruct(s any) *shared.ValidationError {
	out := &shared.ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("", shared.ErrCodeInvalidType, err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		out.Add(fieldName(fe), tagToCode(fe.Tag()), fieldMessage(fe))
	}
	return out
}

// fieldName strips the top-level struct name and lower-cases the first rune
// so errors read like the JSON payload, not like Go identifiers.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func tagToCode(tag string) string {
	switch tag {
	case "required":
		return shared.ErrCodeRequiredField
	case "oneof":
		return shared.ErrCodeInvalidEnum
	case "min", "max", "gt", "gte", "lt", "lte":
		return shared.ErrCodeInvalidRange
	case "email":
		return shared.ErrCodeInvalidFormat
	default:
		return shared.ErrCodeInvalidFormat
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", lowerFirst(fe.Field()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", lowerFirst(fe.Field()), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", lowerFirst(fe.Field()))
	case "min", "gte", "gt":
		return fmt.Sprintf("%s must be at least %s", lowerFirst(fe.Field()), fe.Param())
	case "max", "lte", "lt":
		return fmt.Sprintf("%s must be at most %s", lowerFirst(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", lowerFirst(fe.Field()))
	}
}

// ruleChecker is implemented by inputs that carry cross-field rules beyond
// their struct tags.
type ruleChecker interface {
	validateRules(v *shared.ValidationError)
}

// validateInput runs tag validation followed by the input's cross-field
// rules, collecting everything into one error.
func validateInput(in any) error {
	v := checkStruct(in)
	if rc, ok := in.(ruleChecker); ok {
		rc.validateRules(v)
	}
	return v.ErrOrNil()
}
