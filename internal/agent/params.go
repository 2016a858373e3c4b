package agent

import "strconv"

// Params holds the parameter object returned by the model, decoded from JSON.
// Accessors coerce loosely since the model sometimes quotes numbers or emits
// integers where floats are declared.
type Params map[string]interface{}

// Has reports whether the key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value as a string, or "" when absent or not a string.
func (p Params) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the value as an int, falling back to def when absent or
// unparsable.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Float returns the value as a float64 and whether it was present.
func (p Params) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the value as a bool, falling back to def.
func (p Params) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Map returns the value as a nested object, or nil.
func (p Params) Map(key string) map[string]interface{} {
	if v, ok := p[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}
