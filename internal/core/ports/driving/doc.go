// Package driving defines the inbound ports: interfaces the core
// exposes to external actors (CLI, TUI).
package driving
