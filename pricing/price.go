// Package pricing holds the pure money rules for proposals: unit price
// resolution, line totals, VAT and display labels.
package pricing

import (
	"strconv"
	"strings"

	"msilva-backend/models"

	"github.com/shopspring/decimal"
)

// EffectiveUnitPrice resolves the price of one unit. An override always
// wins, including zero. Without one, on_request is undetermined and any other
// type uses the base price (zero when unset).
func EffectiveUnitPrice(pricingType models.PricingType, basePrice, override *float64) (price float64, determined bool) {
	if override != nil {
		return *override, true
	}
	if pricingType == models.PricingOnRequest {
		return 0, false
	}
	if basePrice == nil {
		return 0, true
	}
	return *basePrice, true
}

// LineTotal is price * max(quantity, 1), or 0 for an undetermined price.
func LineTotal(price float64, determined bool, quantity int) float64 {
	if !determined {
		return 0
	}
	if quantity < 1 {
		quantity = 1
	}
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2).InexactFloat64()
}

// PriceNote is the text shown instead of a number when a line has no price.
func PriceNote(lang models.Language, pricingType models.PricingType, unitPrice float64, hasOverride bool) string {
	if pricingType == models.PricingOnRequest && unitPrice == 0 && !hasOverride {
		return OnRequestLabel(lang)
	}
	return ""
}

func OnRequestLabel(lang models.Language) string {
	if lang == models.LangEN {
		return "On request"
	}
	return "Sob consulta"
}

// VAT returns the VAT amount and grand total for a subtotal. The amount is
// zero when VAT is not shown.
func VAT(subtotal, rate float64, showVAT bool) (vatAmount, total float64) {
	sub := decimal.NewFromFloat(subtotal)
	if !showVAT {
		return 0, sub.Round(2).InexactFloat64()
	}
	vat := sub.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)).Round(2)
	return vat.InexactFloat64(), sub.Add(vat).Round(2).InexactFloat64()
}

// Sum adds money values without float drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Round rounds to cents.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders euros as "1.234,50 €" (pt) or "€1,234.50" (en).
func FormatMoney(lang models.Language, v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	raw := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(raw, ".")

	thousands, point := ".", ","
	if lang == models.LangEN {
		thousands, point = ",", "."
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}
	number := b.String() + point + frac
	if neg {
		number = "-" + number
	}
	if lang == models.LangEN {
		return "€" + number
	}
	return number + " €"
}

// PriceLabel is the price column text for renderers.
func PriceLabel(lang models.Language, pricingType models.PricingType, unitPrice float64, note string) string {
	if note != "" {
		return note
	}
	switch pricingType {
	case models.PricingPerPerson:
		unit := "pessoa"
		if lang == models.LangEN {
			unit = "person"
		}
		return FormatMoney(lang, unitPrice) + " / " + unit
	case models.PricingOnRequest:
		if unitPrice == 0 {
			return OnRequestLabel(lang)
		}
	}
	return FormatMoney(lang, unitPrice)
}

// QuantityLabel is "N pessoas" / "N guests" for per_person lines, else "".
func QuantityLabel(lang models.Language, pricingType models.PricingType, quantity int) string {
	if pricingType != models.PricingPerPerson {
		return ""
	}
	if lang == models.LangEN {
		return strconv.Itoa(quantity) + " guests"
	}
	return strconv.Itoa(quantity) + " pessoas"
}
