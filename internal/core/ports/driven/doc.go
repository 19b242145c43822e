// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentIndex: In-memory multi-field search index over the vault
//
// # Optional Interfaces
//
// These can be nil or absent - the application degrades gracefully:
//
//   - Vault: Supplies parsed documents for indexing. The CLI wires the
//     filesystem vault; library consumers may supply documents directly.
//   - WeightsStore: Persists relevance weights. Without it, the
//     documented defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
