// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Group naming and sanitization
//   - Reading drawings from standard input
//   - Terminal interactivity checks
package utils
