package csvparse

import "github.com/rocjay1/superstore-analytics/internal/models"

// Validate checks that the header carries every required column and returns
// the set of optional columns present.
func Validate(headers []string) (models.Capability, error) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	for _, req := range models.RequiredColumns {
		if !present[req] {
			return 0, &models.MissingRequiredColumnError{Field: req}
		}
	}

	var caps models.Capability
	for _, h := range headers {
		if flag, ok := models.CapabilityFor(h); ok {
			caps |= flag
		}
	}
	return caps, nil
}
