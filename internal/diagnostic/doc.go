// Package diagnostic provides structured errors, warnings and infos
// about attribute tables and merge paths.
//
// Key capabilities:
//   - Attributes that can never be read or written
//   - Unknown path segments with "did you mean" suggestions
//   - Human-readable rendering grouped by severity
package diagnostic
