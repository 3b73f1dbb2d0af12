// Package courier holds the courier roster entry an order can be linked to.
//
// Couriers are managed outside the ordering core; the core only needs to know that a
// courier exists for a tenant and is active before linking it to a delivery order.
package courier
