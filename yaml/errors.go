package yaml

import "fmt"

// ParseError reports a malformed Unity YAML document, carrying a location
// per spec §7's YamlParse error kind.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("yaml: %s (line %d, column %d)", e.Message, e.Line, e.Column)
}
