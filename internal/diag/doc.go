// Package diag defines the core diagnostic model shared by all parse phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the line classifier, block assembler, and section nester.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives in
// the driver layer.
//
// Diagnostics are data, not control flow: no entry ever aborts a parse. A
// malformed document still yields a complete Document, possibly with a long
// diagnostic list.
package diag
