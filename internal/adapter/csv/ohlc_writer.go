package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lightstreams-network/artist-economy/internal/domain"
)

// OHLCWriter streams OHLC rows as CSV records. Monthly writers carry
// the two revenue columns, day writers do not.
type OHLCWriter struct {
	w           *csv.Writer
	withRevenue bool
}

// NewMonthOHLCWriter creates the monthly OHLC sink and writes its header.
func NewMonthOHLCWriter(w io.Writer) (*OHLCWriter, error) {
	return newOHLCWriter(w, "Month", true)
}

// NewDayOHLCWriter creates the daily OHLC sink and writes its header.
func NewDayOHLCWriter(w io.Writer) (*OHLCWriter, error) {
	return newOHLCWriter(w, "Day", false)
}

func newOHLCWriter(w io.Writer, bucketHeader string, withRevenue bool) (*OHLCWriter, error) {
	ow := &OHLCWriter{w: csv.NewWriter(w), withRevenue: withRevenue}

	header := []string{bucketHeader, "Open", "Close", "High", "Low", "Vol"}
	if withRevenue {
		header = append(header, "Artist_Revenue_Fiat", "Project_Revenue_Fiat")
	}
	if err := ow.w.Write(header); err != nil {
		return nil, fmt.Errorf("write ohlc header: %w", err)
	}
	return ow, nil
}

// WriteOHLC appends one row.
func (ow *OHLCWriter) WriteOHLC(row *domain.OHLCRow) error {
	record := []string{
		strconv.Itoa(row.Bucket),
		row.Open.StringFixed(4),
		row.Close.StringFixed(4),
		row.High.StringFixed(4),
		row.Low.StringFixed(4),
		strconv.FormatInt(row.Volume, 10),
	}
	if ow.withRevenue {
		record = append(record,
			row.ArtistRevenueFiat.StringFixed(2),
			row.ProjectRevenueFiat.StringFixed(2),
		)
	}
	return ow.w.Write(record)
}

// Flush writes any buffered records to the underlying writer.
func (ow *OHLCWriter) Flush() error {
	ow.w.Flush()
	return ow.w.Error()
}
