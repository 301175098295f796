package metrics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// bucket accumulates one OHLC time bucket. Open is the first price
// observed inside the bucket; high/low track running extrema; close is
// the last observation before the bucket is emitted.
type bucket struct {
	open, high, low, close decimal.Decimal
	volume                 int64
	samples                int
}

func (b *bucket) observe(price decimal.Decimal) {
	if b.samples == 0 {
		b.open = price
		b.high = price
		b.low = price
	} else {
		if price.GreaterThan(b.high) {
			b.high = price
		}
		if price.LessThan(b.low) {
			b.low = price
		}
	}
	b.close = price
	b.samples++
}

// row materializes the bucket. A bucket with no samples carries the
// previous close for all four price fields.
func (b *bucket) row(label int, carry decimal.Decimal) *domain.OHLCRow {
	if b.samples == 0 {
		return &domain.OHLCRow{Bucket: label, Open: carry, Close: carry, High: carry, Low: carry}
	}
	return &domain.OHLCRow{
		Bucket: label,
		Open:   b.open,
		Close:  b.close,
		High:   b.high,
		Low:    b.low,
		Volume: b.volume,
	}
}

func (b *bucket) reset() {
	*b = bucket{}
}

// BeginDay opens a fresh day bucket.
func (r *Recorder) BeginDay(day int) {
	r.day.reset()
}

// EndDay emits the day OHLC row to the day sinks, if any, and closes
// the bucket.
func (r *Recorder) EndDay(day int) error {
	row := r.day.row(day, r.lastPrice)
	for _, sink := range r.daySinks {
		if err := sink.WriteOHLC(row); err != nil {
			return fmt.Errorf("write day ohlc row: %w", err)
		}
	}
	r.day.reset()
	return nil
}

// BeginMonth opens a fresh month bucket.
func (r *Recorder) BeginMonth(month int) {
	r.month.reset()
}

// EndMonth emits the monthly OHLC row with the revenue accumulated
// since the previous month boundary, then resets the accumulators. The
// reset happens exactly once per boundary.
func (r *Recorder) EndMonth(month int) error {
	row := r.month.row(month, r.lastPrice)
	row.ArtistRevenueFiat = units.ToFiat(r.state.ArtistRevenueMonth, r.fiatRate)
	row.ProjectRevenueFiat = units.ToFiat(r.state.ProjectRevenueMonth, r.fiatRate)

	for _, sink := range r.monthSinks {
		if err := sink.WriteOHLC(row); err != nil {
			return fmt.Errorf("write month ohlc row: %w", err)
		}
	}

	r.month.reset()
	r.state.ResetMonthlyRevenue()
	return nil
}
