package report

import (
	"fmt"
	"time"

	"github.com/lox/avwxlog/internal/avwx"
	"github.com/lox/avwxlog/internal/models"
)

// MalformedDocumentError reports a TAF payload missing fields the hourly
// expansion requires. The document contributes zero rows; other stations
// are unaffected.
type MalformedDocumentError struct {
	Station string
	Reason  string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed taf document for %s: %s", e.Station, e.Reason)
}

// segment is a forecast period with its validity interval resolved against
// the document window.
type segment struct {
	src   *avwx.Segment
	start time.Time
	end   time.Time
}

// contains uses inclusive bounds on both ends.
func (s *segment) contains(t time.Time) bool {
	return !t.Before(s.start) && !t.After(s.end)
}

// ExpandHourly converts a TAF document into one row cluster per clock hour
// across its validity window, from the hour floor of the start through the
// end, inclusive. Each hour gets at most one base row — the BASE or FM change
// with the latest start wins, later document order breaking ties — followed
// by every TEMPO segment covering that hour, in document order. A segment
// without an explicit end runs to the end of the document window.
func ExpandHourly(station string, taf *avwx.TAFResponse) ([]models.HourlyRow, error) {
	if taf.ValidTime == nil || taf.ValidTime.From == "" || taf.ValidTime.To == "" {
		return nil, &MalformedDocumentError{Station: station, Reason: "missing valid_time"}
	}
	start, err := time.Parse(time.RFC3339, taf.ValidTime.From)
	if err != nil {
		return nil, &MalformedDocumentError{Station: station, Reason: fmt.Sprintf("valid_time.from: %v", err)}
	}
	end, err := time.Parse(time.RFC3339, taf.ValidTime.To)
	if err != nil {
		return nil, &MalformedDocumentError{Station: station, Reason: fmt.Sprintf("valid_time.to: %v", err)}
	}

	segments := make([]segment, 0, len(taf.Forecast))
	for i := range taf.Forecast {
		e := &taf.Forecast[i]
		if e.Time == nil || e.Time.From == "" {
			return nil, &MalformedDocumentError{Station: station, Reason: fmt.Sprintf("forecast[%d]: missing start time", i)}
		}
		segStart, err := time.Parse(time.RFC3339, e.Time.From)
		if err != nil {
			return nil, &MalformedDocumentError{Station: station, Reason: fmt.Sprintf("forecast[%d].from: %v", i, err)}
		}
		segEnd := end
		if e.Time.To != "" {
			segEnd, err = time.Parse(time.RFC3339, e.Time.To)
			if err != nil {
				return nil, &MalformedDocumentError{Station: station, Reason: fmt.Sprintf("forecast[%d].to: %v", i, err)}
			}
		}
		segments = append(segments, segment{src: e, start: segStart, end: segEnd})
	}

	var rows []models.HourlyRow

	// Step from the hour floor of the window start. The floor can precede the
	// published start; an hour no base segment covers emits no base row.
	floor := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())
	for t := floor; !t.After(end); t = t.Add(time.Hour) {
		var base *segment
		for i := range segments {
			s := &segments[i]
			if s.src.Type != "BASE" && s.src.Type != "FM" {
				continue
			}
			if s.contains(t) && (base == nil || !s.start.Before(base.start)) {
				base = s
			}
		}
		if base != nil {
			rows = append(rows, segmentRow(station, t, base.src, models.LayerBase))
		}

		for i := range segments {
			s := &segments[i]
			if s.src.Type == "TEMPO" && s.contains(t) {
				rows = append(rows, segmentRow(station, t, s.src, models.LayerTempo))
			}
		}
	}

	return rows, nil
}

// segmentRow flattens one forecast segment at one hour using the shared
// normalization rules.
func segmentRow(station string, t time.Time, e *avwx.Segment, layer string) models.HourlyRow {
	return models.HourlyRow{
		Station:      station,
		ForecastTime: t,
		Layer:        layer,
		Wind:         WindString(e.WindDirection, e.WindSpeed, e.WindGust),
		Visibility:   e.Visibility.String(),
		Weather:      WeatherString(e.WxCodes),
		Clouds:       CloudString(e.Clouds),
		Raw:          string(e.Raw),
	}
}
