// Package order provides the Order aggregate and the status state machine that
// governs its lifecycle.
//
// The package includes:
//   - Status: the closed registry of order statuses
//   - the transition table and ValidateTransition, a pure decision function
//     that also applies the role-specific rules (order managers may take any
//     edge, owners may only cancel pending or confirmed orders)
//   - Order: the aggregate root whose status changes only through
//     ApplyAdminUpdate and Cancel
//   - HistoryEntry: the append-only audit record of accepted changes
//   - LineItem, ShippingAddress, PaymentInfo, Pricing: snapshots taken at placement
package order
