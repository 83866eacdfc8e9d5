// Package types defines the Fieldbook domain entities, role and permission
// resolution, configuration, and the sentinel errors shared by the key-value
// store, the relational engine, and the synchronization service.
package types
