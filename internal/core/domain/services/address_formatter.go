package services

import (
	"strings"

	"dispatch/internal/core/domain/model/directory"
)

// AddressFormatter renders an address on one line:
//
//	"12 Main St Apt 4, Springfield, IL 62701"
//
// Empty parts are skipped together with their separators.
type AddressFormatter struct{}

func NewAddressFormatter() AddressFormatter {
	return AddressFormatter{}
}

func (AddressFormatter) Format(a directory.Address) string {
	line := joinNonEmpty(" ", a.Street, a.Unit)
	region := joinNonEmpty(" ", a.State, a.Zip)
	return joinNonEmpty(", ", line, a.City, region)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
