package validator

// Values gives a rule read access to the current values of sibling fields
type Values interface {
	Value(name string) string
}

// Rule validates a single field value.
// It returns the error label to display, or "" when the value is valid.
type Rule interface {
	Validate(value string, values Values) string
}

// Func adapts an ordinary function to the Rule interface
type Func func(value string, values Values) string

// Validate calls f(value, values)
func (f Func) Validate(value string, values Values) string {
	return f(value, values)
}

// Simple wraps a rule that only inspects its own value
func Simple(fn func(value string) string) Rule {
	return Func(func(value string, _ Values) string {
		return fn(value)
	})
}
