package domain

import (
	"fmt"
	"regexp"
)

var insuredIDPattern = regexp.MustCompile(`^\d{5}$`)

// ValidateInsuredID enforces the zero-padded 5-digit insured code used
// as the first half of the canonical record key. The format is checked
// at every synchronous boundary and never rewritten afterwards.
func ValidateInsuredID(v string) error {
	if !insuredIDPattern.MatchString(v) {
		return fmt.Errorf("%w: insuredId must be exactly 5 digits", ErrInvalidInput)
	}
	return nil
}

func ParseCountryISO(v string) (CountryISO, error) {
	c := CountryISO(v)
	if !c.Valid() {
		return "", fmt.Errorf("%w: countryISO must be PE or CL", ErrInvalidInput)
	}
	return c, nil
}
