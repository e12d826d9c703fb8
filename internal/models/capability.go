package models

import "encoding/json"

// Capability is a set of optional columns present in a loaded table.
type Capability uint16

const (
	CapOrderDate Capability = 1 << iota
	CapShipDate
	CapProfit
	CapQuantity
	CapDiscount
	CapState
	CapSubCategory
	CapProductName
	CapSegment
	CapShipMode
	CapCustomerID
)

var capabilityColumns = []struct {
	flag   Capability
	column string
}{
	{CapOrderDate, ColOrderDate},
	{CapShipDate, ColShipDate},
	{CapProfit, ColProfit},
	{CapQuantity, ColQuantity},
	{CapDiscount, ColDiscount},
	{CapState, ColState},
	{CapSubCategory, ColSubCategory},
	{CapProductName, ColProductName},
	{CapSegment, ColSegment},
	{CapShipMode, ColShipMode},
	{CapCustomerID, ColCustomerID},
}

// CapabilityFor returns the flag gated by an optional column.
func CapabilityFor(column string) (Capability, bool) {
	for _, c := range capabilityColumns {
		if c.column == column {
			return c.flag, true
		}
	}
	return 0, false
}

// Has reports whether every flag in want is set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Present returns the names of the optional columns that are present.
func (c Capability) Present() []string {
	var names []string
	for _, e := range capabilityColumns {
		if c.Has(e.flag) {
			names = append(names, e.column)
		}
	}
	return names
}

// Missing returns the names of the optional columns that are absent.
func (c Capability) Missing() []string {
	var names []string
	for _, e := range capabilityColumns {
		if !c.Has(e.flag) {
			names = append(names, e.column)
		}
	}
	return names
}

// MarshalJSON renders the set as a column name to presence map.
func (c Capability) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, len(capabilityColumns))
	for _, e := range capabilityColumns {
		out[e.column] = c.Has(e.flag)
	}
	return json.Marshal(out)
}

func (c *Capability) UnmarshalJSON(data []byte) error {
	var in map[string]bool
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = 0
	for _, e := range capabilityColumns {
		if in[e.column] {
			*c |= e.flag
		}
	}
	return nil
}
