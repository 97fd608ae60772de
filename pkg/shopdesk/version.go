// Package shopdesk holds module-level metadata.
package shopdesk

// Version is the release version of the shopdesk module.
const Version = "0.1.0"
