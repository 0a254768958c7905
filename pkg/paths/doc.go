// Package paths resolves well-known locations inside a gtirb-go checkout.
package paths
