// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidToken     = errors.New("invalid token format")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Signature computes the HMAC-SHA256 of value under secret,
// URL-safe base64 without padding
func Signature(value, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// Sign packs value into a cookie-safe token "<payload>.<signature>"
func Sign(value, secret string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	return payload + "." + Signature(payload, secret)
}

// Verify checks a token produced by Sign and returns the original value
func Verify(token, secret string) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" {
		return "", ErrInvalidToken
	}

	expected := Signature(payload, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSignature
	}

	value, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(value), nil
}
