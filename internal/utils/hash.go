package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data. Used when
// building the PayPal webhook signature base string, which embeds a digest
// of the raw request body.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HMACBase64 computes an HMAC-SHA256 signature over data using the provided
// key and returns the result base64-encoded, matching the encoding PayPal
// uses for the paypal-transmission-sig header.
func HMACBase64(data string, key string) string {
	hasher := hmac.New(sha256.New, []byte(key))
	hasher.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(hasher.Sum(nil))
}

// HMACEqual compares two MACs in constant time.
func HMACEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// HashString computes an HMAC-SHA256 signature over the given string using
// the provided key and returns the result as a hex-encoded string.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
