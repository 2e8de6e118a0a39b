package commerce

// FieldValues holds the site-specific custom fields attached to an entity,
// keyed by machine field name (e.g. "field_phone").
type FieldValues map[string]string

// Get returns the value of a field and whether it is set and non-empty
func (f FieldValues) Get(name string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
