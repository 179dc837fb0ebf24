// Package driven defines the outbound ports: interfaces the core
// depends on, implemented by adapters (ranking backend client, config
// store, history store).
package driven
