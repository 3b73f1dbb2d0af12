// Package services holds the ordering rules that span more than one aggregate:
//
//   - RegionResolver picks the delivery region covering an address
//   - CouponValidator checks a coupon and computes its discount
//   - PricingEngine derives order totals from items, region, coupon and service fee
//   - StatusTransitionManager drives order status changes with a clock
//   - PaymentOrchestrator decides how transactions are reused and how gateway results apply
//
// All services are pure: they read what they are given and mutate only the aggregates
// passed in. Loading and persisting is left to the command handlers.
package services
