// File: utils/constants.go
package utils

// RevokedTokenPrefix is the prefix for signed-out token hashes in the auth cache.
const RevokedTokenPrefix = "revoked:"

// Context keys set by the auth middleware.
const (
	CtxUserID    = "userID"
	CtxEmail     = "email"
	CtxTokenHash = "tokenHash"
	CtxTokenExp  = "tokenExp"
	CtxProfile   = "profile"
)
