package cache

import (
	"context"
	"time"
)

// Store is a small key-value cache abstraction. The pipeline uses it as a
// read-through cache for assembled layouts; both implementations treat every
// failure as a miss so a broken cache never fails a request.
type Store interface {
	// Get retrieves a value by key; the bool reports a hit
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key string, value string, expiration time.Duration)

	// Delete removes a key
	Delete(ctx context.Context, key string)
}
