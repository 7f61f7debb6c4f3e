// Package kernel holds the shared value objects of the storefront domain.
//
// UUID wraps github.com/google/uuid so that the zero value is detectable and
// rejected; every aggregate, history entry and actor is identified by one.
package kernel
