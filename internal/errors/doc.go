// Package errors defines sentinel errors shared across lockbox packages.
//
// Errors are grouped by concern (validation, overwrite policy, crypto,
// storage, key management) and matched by callers with errors.Is. Lower
// layers wrap these sentinels with context using fmt.Errorf and %w so
// commands can branch on the kind while still printing a useful message.
//
// Every failure mode is distinguishable: "no record" (ErrNotFound) is
// never conflated with "record exists but cannot be decrypted"
// (ErrDecryptFailed), and a declined overwrite (ErrDeclined) is never
// reported as either success or a storage failure.
package errors
