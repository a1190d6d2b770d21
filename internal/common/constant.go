// Package common contains shared constants and sentinel errors used across
// CrickShots components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Session store keys. The names match the keys the storefront has always
// persisted locally so an existing database keeps working.
const (
	SessionKeyAuthToken    = "authToken"
	SessionKeyUserData     = "userData"
	SessionKeyRefreshToken = "refreshToken"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
