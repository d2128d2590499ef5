package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Draft is an editable, not yet validated projection of a Call. Values may
// be empty or invalid while the user is still typing.
type Draft struct {
	CallerName       string `json:"callerName" yaml:"callerName" validate:"min=2"`
	CallerEmail      string `json:"callerEmail" yaml:"callerEmail" validate:"email"`
	CallerPhone      string `json:"callerPhone" yaml:"callerPhone" validate:"min=10"`
	IssueDescription string `json:"issueDescription" yaml:"issueDescription" validate:"min=10"`
	Priority         string `json:"priority" yaml:"priority" validate:"oneof=low medium high critical"`
	Status           string `json:"status" yaml:"status"`
	IssueImage       string `json:"issueImage,omitempty" yaml:"issueImage,omitempty"`
}

// DefaultDraft returns the values a new-call form starts with.
func DefaultDraft() Draft {
	return Draft{
		Priority: string(DefaultPriority),
		Status:   string(DefaultStatus),
	}
}

// DraftFromCall projects an existing call into an edit draft.
func DraftFromCall(c Call) Draft {
	return Draft{
		CallerName:       c.CallerName,
		CallerEmail:      c.CallerEmail,
		CallerPhone:      c.CallerPhone,
		IssueDescription: c.IssueDescription,
		Priority:         string(c.Priority),
		Status:           string(c.Status),
		IssueImage:       c.IssueImage,
	}
}

// Apply copies the draft values onto c, leaving identity and creation time alone.
func (d Draft) Apply(c Call) Call {
	c.CallerName = d.CallerName
	c.CallerEmail = d.CallerEmail
	c.CallerPhone = d.CallerPhone
	c.IssueDescription = d.IssueDescription
	c.Priority = Priority(d.Priority)
	c.Status = Status(d.Status)
	c.IssueImage = d.IssueImage
	return c
}

// ErrInvalidDataURI is returned when a string is not a base64 data URI.
var ErrInvalidDataURI = errors.New("invalid data URI")

// EncodeDataURI renders data as a base64 data URI with the given MIME type.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURI, err)
	}
	return mime, data, nil
}
