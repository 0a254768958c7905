// Package gtirberrors provides error definitions shared across gtirb-go.
//
// Packages wrap these sentinels with context so callers can match them with
// [errors.Is] regardless of where the failure occurred.
package gtirberrors
