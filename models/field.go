package models

// FieldStatus describes whether an extractor produced anything for a field.
type FieldStatus string

const (
	StatusOK      FieldStatus = "ok"
	StatusMissing FieldStatus = "missing"
	StatusPartial FieldStatus = "partial"
)

// Field pairs an extracted value with its status and confidence score.
// Every extracted data point in the page record is wrapped in a Field so
// downstream consumers can weigh it without re-inspecting the source page.
type Field[T any] struct {
	Value      T           `json:"value"`
	Status     FieldStatus `json:"status"`
	Confidence float64     `json:"confidence"`
	Notes      string      `json:"notes,omitempty"`
}

// OKField wraps a value that was successfully extracted.
func OKField[T any](value T, confidence float64) Field[T] {
	return Field[T]{Value: value, Status: StatusOK, Confidence: confidence}
}

// MissingField returns an empty field with confidence zero.
// The notes string explains why nothing was found.
func MissingField[T any](notes string) Field[T] {
	var zero T
	return Field[T]{Value: zero, Status: StatusMissing, Confidence: 0, Notes: notes}
}
