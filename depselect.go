package depselect

// Event names used by bindings. Rebuilds announce themselves with EventCascade
// rather than EventChange so a synchronization is never mistaken for a user
// edit; hosts deliver both through the same subscription mechanism.
const (
	// EventChange is the native change event a user edit fires.
	EventChange = "change"
	// EventCascade is the synthetic event fired on a dependent select after
	// every rebuild, including rebuilds that produced no options.
	EventCascade = "depselect:change"
)

// Option is a single select option as the synchronizer writes it.
type Option struct {
	Text     string
	Value    string
	Selected bool
}

// Field is the read surface the synchronizer needs from an observed control.
// Any form field can drive a dependent select; only its current value is ever
// consulted.
type Field interface {
	// Value returns the control's current value. For selects this is the
	// explicitly selected option's value, the first option's value when no
	// mark is set, or "" when the control has no options.
	Value() string
}

// SelectField is the capability surface the synchronizer needs from the
// dependent control itself. pkg/dom provides the concrete implementation.
type SelectField interface {
	Field

	// ClearOptions removes every option from the control.
	ClearOptions()

	// AppendOption adds one option at the end of the control. Appending an
	// option with Selected set displaces any earlier selection mark, so when
	// several appended options claim selection the last one wins.
	AppendOption(Option)

	// DispatchCascade fires EventCascade on the control.
	DispatchCascade()
}

// FieldResolver looks up form controls by element id.
type FieldResolver interface {
	// Field resolves any form control for reading.
	Field(id string) (Field, error)
	// SelectField resolves a select control.
	SelectField(id string) (SelectField, error)
}
