package cache

import "fmt"

const ns = "catering:v1"

// KeyCatalog is the cache key of the full catalog snapshot.
func KeyCatalog() string {
	return ns + ":catalog"
}

// KeySubmission is the lock key guarding one customer's idempotency key.
func KeySubmission(customerID, idempotencyKey string) string {
	return fmt.Sprintf("%s:idem:booking:%s:%s", ns, customerID, idempotencyKey)
}
