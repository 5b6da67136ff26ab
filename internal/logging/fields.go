package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldView  = "view"

	// Gutter fields.
	FieldBlocks     = "blocks"
	FieldDigits     = "digits"
	FieldDigitWidth = "digit_width"
	FieldWidth      = "width"
	FieldRequest    = "request"

	// Configuration fields.
	FieldTheme    = "theme"
	FieldFontSize = "font_size"
	FieldMode     = "mode"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
