// Package otp generates the short-lived numeric codes used for email
// sign-in.
//
// Codes are random, not time-based: each issued code is persisted (as a
// digest) with its own expiry and compared on verification.
package otp
