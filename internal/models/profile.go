package models

import "strconv"

// Profile is a flat record of named profile fields as the backend sends
// them. Values are float64, string, bool or nil after JSON decoding.
type Profile map[string]interface{}

// Number returns the value for key when it is a JSON number
func (p Profile) Number(key string) (float64, bool) {
	v, ok := p[key].(float64)
	return v, ok
}

// Text returns the value for key when it is a non-empty string
func (p Profile) Text(key string) string {
	s, _ := p[key].(string)
	return s
}

// Has reports whether key is present, even with a null value
func (p Profile) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// FieldValue renders a profile value the way a form input shows it
func FieldValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
