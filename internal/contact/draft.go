package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anmolrajas/portfolio/internal/errors"
)

// Field names a draft input.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldSubject
	FieldMessage
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldSubject:
		return "subject"
	case FieldMessage:
		return "message"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Draft is the in-progress form.
type Draft struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Get returns the value of field.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldSubject:
		return d.Subject
	case FieldMessage:
		return d.Message
	}
	return ""
}

// With returns a copy of d with field set to value.
func (d Draft) With(field Field, value string) Draft {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldSubject:
		d.Subject = value
	case FieldMessage:
		d.Message = value
	}
	return d
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Missing returns the fields that are empty after trimming.
func (d Draft) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) == "" {
			out = append(out, f)
		}
	}
	return out
}

// Validate requires every field and a parseable email address.
func (d Draft) Validate() error {
	const op errors.Op = "contact.Validate"

	if missing := d.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		return errors.ValidationFailed(op, "required: "+strings.Join(names, ", "))
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(d.Email))
	if err != nil || addr.Name != "" {
		return errors.ValidationFailed(op, fmt.Sprintf("%q is not an email address", strings.TrimSpace(d.Email)))
	}
	return nil
}

// TimestampLayout is the receivedAt encoding: ISO-8601 UTC with
// milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Payload is what the email-dispatch collaborator receives.
type Payload struct {
	ID          string `json:"-"`
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ReceivedAt  string `json:"receivedAt"`
}

// NewPayload builds the submission for d stamped at now.
func NewPayload(d Draft, now time.Time) Payload {
	return Payload{
		ID:          uuid.New().String(),
		SenderName:  strings.TrimSpace(d.Name),
		SenderEmail: strings.TrimSpace(d.Email),
		Subject:     strings.TrimSpace(d.Subject),
		Message:     strings.TrimSpace(d.Message),
		ReceivedAt:  now.UTC().Format(TimestampLayout),
	}
}
