// Package match provides identifier similarity and type compatibility scoring.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Similarity: scores two identifiers with normalized Levenshtein distance
//   - Suggest: ranks attribute names for "did you mean" hints
//   - ScoreReflectCompatibility / ScoreTypeCompatibility: decide whether a method
//     parameter or result type can stand in for an attribute type
package match
