// Package domain contains the core business entities for skim:
// ranked results, keyset cursors, pages and browse windows.
// It has no dependencies on adapters or external services.
package domain
