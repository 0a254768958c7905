// Package tracing provides lightweight timing spans for build-time tooling.
package tracing
