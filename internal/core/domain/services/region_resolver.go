package services

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/region"
	"ordering/internal/pkg/errs"
)

// RegionResolver maps an address to one of the tenant's delivery regions.
//
// Rules are applied in order and the first hit wins:
//   - exact normalized neighborhood, city and state
//   - neighborhood and city containing one another, with an exact state
//   - exact postal code, digits only
//
// Inactive regions are ignored. A tenant without any active region gets
// REGION_NOT_CONFIGURED; an uncovered address gets REGION_UNAVAILABLE.
type RegionResolver struct{}

func NewRegionResolver() RegionResolver {
	return RegionResolver{}
}

func (r RegionResolver) Resolve(regions []*region.Region, address kernel.Address) (*region.Region, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}

	active := make([]*region.Region, 0, len(regions))
	for _, candidate := range regions {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if candidate.IsActive() {
			active = append(active, candidate)
		}
	}
	if len(active) == 0 {
		return nil, errs.NewRegionUnavailableError(errs.CodeRegionNotConfigured, "tenant has no active delivery regions")
	}

	neighborhood := kernel.NormalizeLocality(address.Neighborhood())
	city := kernel.NormalizeLocality(address.City())
	state := kernel.NormalizeLocality(address.State())

	for _, candidate := range active {
		if candidate.Neighborhood() == neighborhood && candidate.City() == city && candidate.State() == state {
			return candidate, nil
		}
	}

	for _, candidate := range active {
		if candidate.State() == state &&
			overlaps(candidate.Neighborhood(), neighborhood) &&
			overlaps(candidate.City(), city) {
			return candidate, nil
		}
	}

	if postalCode := address.PostalCodeDigits(); postalCode != "" {
		for _, candidate := range active {
			if candidate.PostalCode() == postalCode {
				return candidate, nil
			}
		}
	}

	return nil, errs.NewRegionUnavailableError(
		errs.CodeRegionUnavailable,
		fmt.Sprintf("no delivery region covers %s, %s - %s", neighborhood, city, state),
	)
}

func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
