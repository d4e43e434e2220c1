// Package form implements the POST-redirect-GET form flow: every field
// accumulates its full error list during validation, and on failure the
// redacted field state survives the redirect through a one-time
// server-side capsule instead of being re-rendered in place.
package form

// Field is the display model for one form input.
type Field struct {
	Value  string   `json:"value"`
	Errors []string `json:"errors"`
	Label  string   `json:"label,omitempty"`
}

func (f *Field) Fail(msg string) {
	f.Errors = append(f.Errors, msg)
}

func (f *Field) Invalid() bool {
	return len(f.Errors) > 0
}

// WireField is the round-trip model: value and errors only, display
// concerns like labels are redacted before encoding.
type WireField struct {
	Value  string   `json:"value,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func (f Field) wire() WireField {
	return WireField{Value: f.Value, Errors: f.Errors}
}

func (f *Field) hydrate(w WireField, keepValue bool) {
	if keepValue && w.Value != "" {
		f.Value = w.Value
	}
	f.Errors = append(f.Errors, w.Errors...)
}

// Payload is what a failed submission serializes into a capsule.
type Payload struct {
	Fields map[string]WireField `json:"fields"`
	Errors []string             `json:"errors,omitempty"`
}

const (
	msgRequired     = "This field is required."
	msgTooLong      = "This field must not exceed 255 characters."
	msgEmailFormat  = "Email format is invalid."
	msgEmailTaken   = "Email is already registered to another account."
	msgPasswordLen  = "Password must be at least 8 characters."
	msgPasswordDiff = "The two password fields do not match."
)
