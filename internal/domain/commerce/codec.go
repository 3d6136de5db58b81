package commerce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Virtual field codecs. Each codec is a pair of pure, total functions between
// a structured in-memory value and its flat stored representation. Decode
// never fails: absent or garbled stored values map to the structured zero
// value so callers always observe something well-formed.

// LeadTime is a min/max day range, stored as a comma-joined string.
type LeadTime struct {
	MinDays int `json:"min"`
	MaxDays int `json:"max"`
}

// IsZero reports whether the range is the absent value.
func (t LeadTime) IsZero() bool {
	return t.MinDays == 0 && t.MaxDays == 0
}

// EncodeLeadTime renders the range as its stored string form.
func EncodeLeadTime(t LeadTime) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d,%d", t.MinDays, t.MaxDays)
}

// DecodeLeadTime parses the stored string form. If either side is not a
// finite number the whole value is treated as absent, not as an error.
func DecodeLeadTime(stored string) LeadTime {
	parts := strings.Split(stored, ",")
	if len(parts) != 2 {
		return LeadTime{}
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return LeadTime{}
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return LeadTime{}
	}
	return LeadTime{MinDays: min, MaxDays: max}
}

// GeoPoint is a latitude/longitude pair, stored as two nullable decimal columns.
type GeoPoint struct {
	Lat decimal.Decimal `json:"lat"`
	Lon decimal.Decimal `json:"lon"`
}

// EncodeGeoPoint splits the pair into its two stored columns. A nil point
// clears both.
func EncodeGeoPoint(p *GeoPoint) (lat, lon *decimal.Decimal) {
	if p == nil {
		return nil, nil
	}
	la, lo := p.Lat, p.Lon
	return &la, &lo
}

// DecodeGeoPoint assembles the pair from its stored columns. A half-populated
// row decodes as absent; the validation layer prevents writing one.
func DecodeGeoPoint(lat, lon *decimal.Decimal) *GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &GeoPoint{Lat: *lat, Lon: *lon}
}

// EncodeStreetLines writes an ordered 1-2 line street list onto the two
// stored columns. Only explicitly provided lines overwrite; an absent
// structured line never clears a populated stored one.
func EncodeStreetLines(lines []string, storedLine1, storedLine2 string) (line1, line2 string) {
	line1, line2 = storedLine1, storedLine2
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		line1 = lines[0]
	}
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		line2 = lines[1]
	}
	return line1, line2
}

// DecodeStreetLines returns the stored street columns as an ordered list,
// omitting an empty second line.
func DecodeStreetLines(line1, line2 string) []string {
	if line2 == "" {
		if line1 == "" {
			return []string{}
		}
		return []string{line1}
	}
	return []string{line1, line2}
}
