// Package kernel holds the value objects shared by every aggregate of the ordering core:
//   - UUID: identifier wrapper over github.com/google/uuid;
//   - Money: non-negative amount with two decimal places over github.com/shopspring/decimal;
//   - Address: delivery address frozen into orders at finalize time.
//
// All of them are immutable. UUID and Address reject their zero value through Validate.
package kernel
