// Package types defines the configuration, table and grid value types, and
// standard errors shared across the shopdesk storage and grid layers.
package types
