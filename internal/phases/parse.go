package phases

import (
	"fmt"
	"strconv"
	"strings"
)

// CodingSeparator separates samples in the textual form of a coding.
const CodingSeparator = ":"

// ParseError reports a field of a textual coding that is not a valid sample.
type ParseError struct {
	Field int
	Value string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid coding value %q at field %d: %v", e.Value, e.Field, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParseCoding parses a colon separated coding such as "256:256:0:0:38".
// Empty fields are ignored.
func ParseCoding(s string) (Coding, error) {
	fields := strings.Split(strings.TrimSpace(s), CodingSeparator)
	coding := make(Coding, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseUint(field, 10, 16)
		if err != nil {
			return nil, &ParseError{Field: i, Value: field, Cause: err}
		}
		coding = append(coding, Value(v))
	}
	return coding, nil
}

// String renders the coding in its colon separated form.
func (c Coding) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, CodingSeparator)
}
