// Package domain contains the core entities of speciesdiff.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (file formats, spreadsheets, charts, logging) and
// contains only value types and error classification.
//
// # Entities
//
//   - [SpeciesName]: a single species identifier, compared by exact equality
//   - [SpeciesSet]: an immutable set of names with deterministic sorted output
//   - [Dataset]: one labeled input collection, duplicates preserved
//   - [ComparisonResult]: the two input sets plus their intersection,
//     differences and union
//
// # Errors
//
// Adapters return [*OpError] values tagged with an [ErrorKind]. Callers
// classify them with [IsKind] or errors.Is against the sentinel errors.
package domain
