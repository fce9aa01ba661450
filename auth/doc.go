// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides random IDs and HMAC signing for values handed to the
browser.

# Signed Tokens

Sign packs a value with an HMAC-SHA256 signature:

	token := auth.Sign("Poll created successfully!", secret)
	value, err := auth.Verify(token, secret)

The token is "<payload>.<signature>", both URL-safe base64 without padding,
so it can be stored in a cookie as-is. Verify returns ErrInvalidSignature for
tampered tokens and ErrInvalidToken for malformed ones.

# Random IDs

	secret, err := auth.GenerateID(32)

GenerateID returns byteLen random bytes hex encoded. It is used for the
signing secret when none is configured.
*/
package auth
