// Package payment implements the payment transaction aggregate: one attempt to collect
// payment for an order through a gateway.
//
// Transaction status only moves forward:
//
//	PENDING ──> AUTHORIZED ──> PAID ──> REFUNDED
//	   │            │
//	   ├─> DECLINED └─> CANCELLED
//	   └─> CANCELLED
//
// Transactions are never deleted. An order holds at most one transaction that is not in a
// failed terminal state (DECLINED, CANCELLED, REFUNDED).
package payment
