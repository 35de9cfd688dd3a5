package prices

import "fmt"

// ParseError reports a cell that could not be parsed as a date or a price.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports input whose header does not carry the expected layout,
// most importantly the absence of any Close column.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "bad price table schema: " + e.Reason
}
