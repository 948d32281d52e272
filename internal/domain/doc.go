// Package domain contains the core model for library design: targets, the
// single-mismatch pairs derived from them, predictions, and the artifacts of a
// design run.
//
// The domain is transport- and persistence-agnostic: it does not depend on TSV
// parsing, YAML, net/http, or the filesystem. Infra adapters map into/from these types.
package domain
