package config

import (
	"os"
	"sync"
)

var (
	publishableKeyOnce sync.Once
	publishableKey     string
)

// StripePublishableKey returns the payment-processor publishable key, loaded
// once from the environment and memoized for the lifetime of the process.
// A publishable key is not a secret; it is handed to payment clients so they
// can confirm intents created by the create-payment-intent function.
func StripePublishableKey() string {
	publishableKeyOnce.Do(func() {
		publishableKey = os.Getenv("STRIPE_PUBLISHABLE_KEY")
	})
	return publishableKey
}
