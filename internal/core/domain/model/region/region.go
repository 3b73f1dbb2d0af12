// Package region models tenant-defined delivery fee regions. Regions are owned by the
// catalog administration and are read-only to the ordering core.
package region

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrRegionIsNotConstructed = errors.New("Region must be created via NewRegion constructor")

// Region maps a neighborhood/city/state (or a postal code) to a delivery fee.
// Locality names are stored normalized with kernel.NormalizeLocality.
type Region struct {
	id               kernel.UUID
	tenantID         kernel.UUID
	neighborhood     string
	city             string
	state            string
	postalCode       string
	fee              kernel.Money
	estimatedMinutes int
	active           bool

	isConstructed bool
}

func NewRegion(
	id, tenantID kernel.UUID,
	neighborhood, city, state, postalCode string,
	fee kernel.Money,
	estimatedMinutes int,
	active bool,
) (*Region, error) {
	r := &Region{
		neighborhood:  kernel.NormalizeLocality(neighborhood),
		city:          kernel.NormalizeLocality(city),
		state:         kernel.NormalizeLocality(state),
		postalCode:    kernel.DigitsOnly(postalCode),
		fee:           fee,
		active:        active,
		isConstructed: true,
	}

	var keyErr error
	if r.postalCode == "" && (r.neighborhood == "" || r.city == "" || r.state == "") {
		keyErr = errs.NewValueIsRequiredError("neighborhood, city and state or postal code")
	}
	var etaErr error
	if estimatedMinutes < 0 {
		etaErr = errs.NewValueIsInvalidErrorWithCause("estimated minutes", fmt.Errorf("%d is negative", estimatedMinutes))
	}

	if err := errors.Join(id.Validate(), tenantID.Validate(), keyErr, etaErr); err != nil {
		return nil, err
	}
	r.id, r.tenantID, r.estimatedMinutes = id, tenantID, estimatedMinutes
	return r, nil
}

func (r *Region) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRegionIsNotConstructed
	}
	return nil
}

func (r *Region) ID() kernel.UUID { return r.id }
func (r *Region) TenantID() kernel.UUID { return r.tenantID }
func (r *Region) Neighborhood() string { return r.neighborhood }
func (r *Region) City() string { return r.city }
func (r *Region) State() string { return r.state }
func (r *Region) PostalCode() string { return r.postalCode }
func (r *Region) Fee() kernel.Money { return r.fee }
func (r *Region) EstimatedMinutes() int { return r.estimatedMinutes }
func (r *Region) IsActive() bool { return r.active }
