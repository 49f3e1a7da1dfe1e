// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend on ports and the pure pipeline packages (extract,
// aggregate). PDF parsing, storage and config live behind driven adapters.
package services
