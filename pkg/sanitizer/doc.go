// Package sanitizer provides input normalization functions for shop data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// The package is used across the services for consistent normalization
// before validation and storage:
//   - Phone numbers: converted to E.164 format (+[country][number])
//   - VINs: uppercased, separators stripped, check digit verified
//   - Strings: whitespace collapsed, leading/trailing spaces trimmed
//   - Specialties/labels: lowercased with special characters removed,
//     so "Brake-Repair" and "brake repair" normalize to the same value
//   - Slices: duplicates and empty values removed after normalization
//   - Numbers: clamped to valid ranges
package sanitizer
