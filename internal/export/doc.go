// Package export sweeps functions over a closed range and writes the
// samples as CSV, JSON, YAML or TOML.
//
// A sweep evaluates each Column at every grid point of a utilities.Range.
// Points are split into chunks and evaluated by a bounded errgroup; the
// resulting Table keeps grid order regardless of scheduling.
//
// CSV output starts with a header row "X,<column>..." and writes values with
// the shortest round-trip representation, NaN included. JSON and YAML
// encode undefined values as null; TOML keeps them as nan.
//
// Paths ending in .gz are gzip-compressed.
package export
