// Package devmode provides shared configuration for local development mode.
package devmode

// APIKey is the development mode API key accepted by a locally run store.
// This key is intentionally obvious and should never be used in production.
const APIKey = "LOCAL_DEV_MODE_NOT_FOR_PRODUCTION"
