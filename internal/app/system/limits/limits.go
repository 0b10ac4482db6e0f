// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for JSON request bodies.
	// Applied by httpx.DecodeJSON via http.MaxBytesReader.
	MaxJSONBodySize = 1 << 20 // 1 MB
)
