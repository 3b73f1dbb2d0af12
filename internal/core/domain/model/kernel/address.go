package kernel

import (
	"errors"
	"strings"
	"unicode"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a delivery address. Orders keep a copy taken at finalize time,
// so later edits to the customer's saved address never reach an existing order.
type Address struct {
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	state        string
	postalCode   string

	guard guard.ConstructorGuard
}

// NewAddress requires neighborhood, city and state; the remaining parts are optional.
func NewAddress(street, number, complement, neighborhood, city, state, postalCode string) (Address, error) {
	a := Address{
		street:     strings.TrimSpace(street),
		number:     strings.TrimSpace(number),
		complement: strings.TrimSpace(complement),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setNeighborhood(neighborhood),
		a.setCity(city),
		a.setState(state),
	); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string { return a.street }
func (a Address) Number() string { return a.number }
func (a Address) Complement() string { return a.complement }
func (a Address) Neighborhood() string { return a.neighborhood }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) PostalCode() string { return a.postalCode }

// PostalCodeDigits strips everything but digits, so "01310-100" and "01310100" compare equal.
func (a Address) PostalCodeDigits() string {
	return DigitsOnly(a.postalCode)
}

func (a *Address) setNeighborhood(v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError("neighborhood")
	}
	a.neighborhood = strings.TrimSpace(v)
	return nil
}

func (a *Address) setCity(v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = strings.TrimSpace(v)
	return nil
}

func (a *Address) setState(v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError("state")
	}
	a.state = strings.TrimSpace(v)
	return nil
}

// NormalizeLocality folds accents, collapses whitespace, trims and uppercases a
// neighborhood, city or state name so "São  Paulo " and "SAO PAULO" compare equal.
func NormalizeLocality(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
