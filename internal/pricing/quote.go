package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/schedule"
)

// Calculator prices reservation windows against a court's pricing rules
// and the facility's tax policy.
type Calculator struct {
	// TaxRate is the VAT fraction (0.19 = 19%)
	TaxRate float64

	// PriceIncludesTax decides whether rule prices are gross or net
	PriceIncludesTax bool

	// Currency is reported on every quote
	Currency string
}

// Quote prices a single-day window. rules are the court's pricing rules
// (any date); promotions are the candidate promotions for the court and
// its complex. Returns models.ErrNoPricingCoverage when any part of the
// window has no applicable rule.
func (c *Calculator) Quote(rules []models.PricingRule, promotions []models.Promotion, window schedule.Interval) (*models.Quote, error) {
	if window.IsEmpty() {
		return nil, models.NewValidationError("quote window is empty")
	}

	applicable := RulesFor(rules, window.Start)

	segments, raw, err := c.segment(applicable, window)
	if err != nil {
		return nil, err
	}

	var net, tax, total float64
	if c.PriceIncludesTax {
		net = raw / (1 + c.TaxRate)
		tax = raw - net
		total = raw
	} else {
		net = raw
		tax = raw * c.TaxRate
		total = raw + tax
	}

	// Tax and total round to whole currency units at the end, never
	// per segment.
	tax = math.Round(tax)
	total = math.Round(total)
	net = round2(net)

	quote := &models.Quote{
		Net:      net,
		Tax:      tax,
		Total:    total,
		Currency: c.Currency,
		Segments: segments,
	}

	if promo := BestPromotion(promotions, window.Start); promo != nil {
		quote.Discount = discountFor(promo, raw)
		quote.PromotionLabel = &promo.Label
	}

	quote.FinalTotal = total - quote.Discount
	if quote.FinalTotal < 0 {
		quote.FinalTotal = 0
	}

	return quote, nil
}

// segment walks a cursor across the window, cutting it at rule
// boundaries. Every instant must be covered by some rule.
func (c *Calculator) segment(rules []models.PricingRule, window schedule.Interval) ([]models.QuoteSegment, float64, error) {
	var segments []models.QuoteSegment
	var raw float64

	cursor := window.Start
	for cursor.Before(window.End) {
		rule := MatchAt(rules, cursor)
		if rule == nil {
			return nil, 0, fmt.Errorf("%w: uncovered from %s",
				models.ErrNoPricingCoverage, cursor.Format("15:04"))
		}

		segEnd := ruleEndOn(rule, cursor)
		if segEnd.After(window.End) {
			segEnd = window.End
		}

		minutes := int(segEnd.Sub(cursor) / time.Minute)
		subtotal := round2(rule.PricePerHour * float64(minutes) / 60)
		segments = append(segments, models.QuoteSegment{
			Start:        cursor.Format("15:04"),
			End:          segEnd.Format("15:04"),
			Minutes:      minutes,
			PricePerHour: rule.PricePerHour,
			Subtotal:     subtotal,
		})

		raw += subtotal
		cursor = segEnd
	}

	return segments, raw, nil
}

// BestPromotion selects the promotion to apply: among active promotions
// valid on the date, court-scoped ones outrank complex-scoped ones, then
// the most recently updated wins. Returns nil when none match.
func BestPromotion(promotions []models.Promotion, date time.Time) *models.Promotion {
	var best *models.Promotion
	for i := range promotions {
		p := &promotions[i]
		if !p.ValidOn(date) {
			continue
		}
		if best == nil || promotionOutranks(p, best) {
			best = p
		}
	}
	return best
}

func promotionOutranks(a, b *models.Promotion) bool {
	if (a.CourtID != nil) != (b.CourtID != nil) {
		return a.CourtID != nil
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

// discountFor computes the discount against the pre-tax-policy raw
// amount. Fixed discounts never exceed the raw amount.
func discountFor(p *models.Promotion, raw float64) float64 {
	switch p.Kind {
	case models.PromotionKindPercentage:
		return round2(raw * p.Value / 100)
	case models.PromotionKindFixed:
		return math.Min(raw, p.Value)
	default:
		return 0
	}
}

// ruleEndOn materialises a rule's end_time on the cursor's date
func ruleEndOn(rule *models.PricingRule, cursor time.Time) time.Time {
	end, err := models.ParseClock(rule.EndTime)
	if err != nil {
		return cursor
	}
	midnight := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, cursor.Location())
	return midnight.Add(time.Duration(end) * time.Minute)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
