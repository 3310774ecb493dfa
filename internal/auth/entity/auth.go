package entity

import (
	"errors"
	"time"
)

// ErrCodeMismatch is returned when a claimed code does not match the stored
// digest. The challenge stays usable for another attempt until it expires.
var ErrCodeMismatch = errors.New("code does not match challenge digest")

// Challenge is one outstanding OTP issuance for an email.
//
// At most one challenge exists per email; a new issuance overwrites the
// previous row. Expiry is enforced at read time only.
type Challenge struct {
	Email      string
	CodeDigest string
	ExpiresAt  time.Time
	Used       bool
}

// Account is a user record. IsAuth is the entire session state.
type Account struct {
	Email    string
	UserName string
	IsAuth   bool
}
