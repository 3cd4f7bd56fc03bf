//go:build unit || e2e

package testutil

// Field returns a mutation that sets key in a request map, or removes
// the key entirely when value is nil. Combine with DtoMap to build
// invalid request bodies from a valid DTO.
func Field(key string, value any) func(map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
