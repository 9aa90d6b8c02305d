package formz

// Field describes one tracked input: an opaque identifier, unique within a
// pool, and whether the input must be non-empty to count as filled.
// A Field carries identity only; live content lives on FieldState.
type Field struct {
	ID       string
	Required bool
}

// Same reports whether other refers to the same logical field.
// Identity is the identifier alone; required-ness does not participate.
func (f Field) Same(other Field) bool {
	return f.ID == other.ID
}

// Snapshot is an immutable copy of a field's identity and content at one
// instant. Snapshots are decoupled from the FieldState that produced them,
// so holding or modifying one never affects live state.
type Snapshot struct {
	ID       string
	Content  string
	Required bool
}

// Empty reports whether the snapshot's content is empty.
func (s Snapshot) Empty() bool {
	return len(s.Content) == 0
}

// MissingRequired reports whether the field is required but empty.
func (s Snapshot) MissingRequired() bool {
	return s.Required && s.Empty()
}
