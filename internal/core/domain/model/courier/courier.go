package courier

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery rider registered by a tenant.
// The ordering core reads couriers but never changes the roster itself.
//
// Business rules:
//   - Courier must have valid UUIDs for itself and its tenant and a non-empty name
//   - Only active couriers may be linked to orders
//   - A courier serves the orders of its own tenant only
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), tenantID, "Ana Souza", "+55 81 99999-0000", true)
//	if err != nil {
//	    // Handle construction error
//	}
//	if c.CanServe(o.TenantID()) {
//	    // Link the courier to the delivery order
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// tenantID is the restaurant the courier rides for
	tenantID kernel.UUID
	// name is the human-readable name shown to staff
	name string
	// phone is an optional contact number, stored trimmed
	phone string
	// active is false once the courier is taken off the roster
	active bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to create a valid Courier instance.
//
// Parameters:
//   - id: unique identifier for the courier (must be valid UUID)
//   - tenantID: owning tenant (must be valid UUID)
//   - name: human-readable name (must be non-empty after trimming)
//   - phone: contact number, may be empty
//   - active: whether the courier can be linked to orders
//
// Returns:
//   - *Courier: the constructed courier
//   - error: every validation failure joined together
func NewCourier(id, tenantID kernel.UUID, name, phone string, active bool) (*Courier, error) {
	c := &Courier{
		phone:  strings.TrimSpace(phone),
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		c.setName(name),
	); err != nil {
		return nil, err
	}
	c.id, c.tenantID = id, tenantID

	return c, nil
}

// Validate reports ErrCourierIsNotConstructed for a nil courier or one not built
// by NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// TenantID returns the tenant the courier rides for.
func (c *Courier) TenantID() kernel.UUID { return c.tenantID }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the contact number, empty when unknown.
func (c *Courier) Phone() string { return c.phone }

// IsActive reports whether the courier is on the roster.
func (c *Courier) IsActive() bool { return c.active }

// Deactivate takes the courier off the roster; linked orders keep the reference.
func (c *Courier) Deactivate() {
	c.active = false
}

// CanServe reports whether the courier may be linked to orders of tenantID.
//
// Returns:
//   - true if the courier is active and belongs to tenantID
//   - false otherwise, including for couriers of other tenants
func (c *Courier) CanServe(tenantID kernel.UUID) bool {
	return c.active && c.tenantID.IsEqual(tenantID)
}

// setName trims and validates the courier name.
func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
