package model

// FieldType identifies the kind of input area a field represents. Values
// match the upstream estimate contract, so the type is string-backed.
type FieldType string

const (
	FieldText       FieldType = "text"
	FieldDate       FieldType = "date"
	FieldLinkedDate FieldType = "linkedDate"
	FieldCheckbox   FieldType = "checkbox"
	FieldTextarea   FieldType = "textarea"
	FieldTable      FieldType = "table"
)

// IsInlineText reports whether the field is a single-line text-like input.
// Only these fields sit on the same baseline as their label, so only they
// are eligible for left-edge label snapping.
func (ft FieldType) IsInlineText() bool {
	switch ft {
	case FieldText, FieldDate:
		return true
	default:
		return false
	}
}

// IsLineSnappable reports whether the field's bottom edge is expected to
// rest on a printed rule. Rectangle-bordered fields (checkboxes, textareas,
// tables) are excluded; their geometry comes from rect snapping instead.
func (ft FieldType) IsLineSnappable() bool {
	switch ft {
	case FieldText, FieldDate, FieldLinkedDate:
		return true
	default:
		return false
	}
}

// TableConfig carries the table-specific geometry of a table field.
type TableConfig struct {
	Coordinates Box `json:"coordinates"`
	Rows        int `json:"rows,omitempty"`
	Columns     int `json:"columns,omitempty"`
}

// DateSegment is one part of a segmented date field (day, month, year).
// The box fields are flattened into the segment object on the wire.
type DateSegment struct {
	Part string `json:"part"`
	Box
}

// Field is a single form-field estimate: a label, a type, and a box in
// page space. Table fields carry their geometry in TableConfig; segmented
// dates carry per-part boxes in DateSegments.
type Field struct {
	Label        string        `json:"label"`
	FieldType    FieldType     `json:"fieldType"`
	Coordinates  Box           `json:"coordinates"`
	TableConfig  *TableConfig  `json:"tableConfig,omitempty"`
	DateSegments []DateSegment `json:"dateSegments,omitempty"`
	GroupLabel   string        `json:"groupLabel,omitempty"`
}

// EffectiveBox returns the coordinates that represent the field for
// overlap comparisons: the table geometry when present, otherwise the
// bounding box of the date segments, otherwise the plain coordinates.
func (f Field) EffectiveBox() Box {
	if f.TableConfig != nil {
		return f.TableConfig.Coordinates
	}
	if len(f.DateSegments) > 0 {
		return boundsOfSegments(f.DateSegments)
	}
	return f.Coordinates
}

// WithCoordinates returns a copy of the field with replaced coordinates.
// The original field is left untouched.
func (f Field) WithCoordinates(b Box) Field {
	f.Coordinates = b
	return f
}

func boundsOfSegments(segments []DateSegment) Box {
	if len(segments) == 0 {
		return Box{}
	}

	bounds := segments[0].Box
	for _, seg := range segments[1:] {
		bounds = bounds.Union(seg.Box)
	}
	return bounds
}
