package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/pricing"
)

// FlexDecimal accepts a JSON number or commercial text ("R$ 1.234,56",
// "25,5%") and normalizes it through pricing.Parse. Valid is false when the
// field was absent, null or blank.
type FlexDecimal struct {
	Decimal decimal.Decimal
	Valid   bool
}

func NewFlexDecimal(d decimal.Decimal) FlexDecimal { return FlexDecimal{Decimal: d, Valid: true} }

func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*f = FlexDecimal{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	f.Decimal = pricing.Parse(raw, decimal.Zero)
	f.Valid = strings.TrimSpace(raw) != ""
	return nil
}

func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return f.Decimal.MarshalJSON()
}
