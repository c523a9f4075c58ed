package model

// Bilingual is a text field carried in both site languages. Both keys are
// always present in the stored form; "ka" is Kannada.
type Bilingual struct {
	EN string `json:"en"`
	KA string `json:"ka"`
}

// WithFallback returns the field with a blank Kannada side filled from the
// English one. This is a data-entry convenience applied when a record is
// built from editor input, never a storage-layer rule.
func (b Bilingual) WithFallback() Bilingual {
	if b.KA == "" {
		b.KA = b.EN
	}
	return b
}

// IsZero reports whether the editor left both sides blank.
func (b Bilingual) IsZero() bool {
	return b.EN == "" && b.KA == ""
}
