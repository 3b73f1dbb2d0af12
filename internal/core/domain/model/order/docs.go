// Package order implements the Order aggregate of the ordering core.
//
// The aggregate owns its Items and its append-only status History by value; the current
// payment transaction is held only as an ID. Totals are never accepted from callers:
// they are recomputed from items by the pricing engine and applied with ApplyPricing,
// which refuses a result whose subtotal does not match the current items.
//
// Status is a closed enum. The string codes (PENDING, PRINT_PENDING, ...) exist only at the
// storage and event boundary through String and ParseStatus.
package order
