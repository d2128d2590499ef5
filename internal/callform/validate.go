package callform

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rcliao/helpdesk/internal/model"
)

// Field names one editable draft field.
type Field string

const (
	FieldCallerName       Field = "callerName"
	FieldCallerEmail      Field = "callerEmail"
	FieldCallerPhone      Field = "callerPhone"
	FieldIssueDescription Field = "issueDescription"
	FieldPriority         Field = "priority"
	FieldStatus           Field = "status"
)

// Fields lists the text fields in form order.
var Fields = []Field{
	FieldCallerName,
	FieldCallerEmail,
	FieldCallerPhone,
	FieldIssueDescription,
	FieldPriority,
	FieldStatus,
}

// Label returns the user-facing label of the field.
func (f Field) Label() string {
	switch f {
	case FieldCallerName:
		return "Name"
	case FieldCallerEmail:
		return "Email"
	case FieldCallerPhone:
		return "Phone Number"
	case FieldIssueDescription:
		return "Description"
	case FieldPriority:
		return "Priority"
	case FieldStatus:
		return "Status"
	}
	return string(f)
}

var messages = map[Field]string{
	FieldCallerName:       "Caller name is required",
	FieldCallerEmail:      "Please enter a valid email address",
	FieldCallerPhone:      "Please enter a valid phone number",
	FieldIssueDescription: "Please provide a detailed description",
	FieldPriority:         "Please select a valid priority",
}

// FieldErrors maps an invalid field to its message.
type FieldErrors map[Field]string

// String lists the errors in form order, one "field: message" per entry.
func (fe FieldErrors) String() string {
	var parts []string
	for _, f := range Fields {
		if msg, ok := fe[f]; ok {
			parts = append(parts, string(f)+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// ValidationError is returned by Submit when the draft does not pass Validate.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.String()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		return name
	})
	return v
}

// Validate checks a draft against the call schema. It returns nil when the
// draft is valid. Status is free-form and never reported.
func Validate(d model.Draft) FieldErrors {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable on a programming error in the struct tags.
		panic(fmt.Sprintf("callform: validate draft: %v", err))
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		f := Field(fe.Field())
		if msg, ok := messages[f]; ok {
			out[f] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
