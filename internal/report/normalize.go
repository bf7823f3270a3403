package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/avwxlog/internal/avwx"
	"github.com/lox/avwxlog/internal/models"
)

// WindString composes the conventional DDDSS(Ggg)KT wind group. Both
// direction and speed must be numeric; otherwise the result is empty,
// never a partial group.
func WindString(dir, speed, gust avwx.Value) string {
	d, okDir := dir.Int()
	s, okSpeed := speed.Int()
	if !okDir || !okSpeed {
		return ""
	}
	w := fmt.Sprintf("%03d%02d", d, s)
	if g, ok := gust.Int(); ok && g != 0 {
		w += fmt.Sprintf("G%d", g)
	}
	return w + "KT"
}

// CloudString joins cloud layers as type+altitude groups.
func CloudString(layers []avwx.CloudLayer) string {
	parts := make([]string, 0, len(layers))
	for _, l := range layers {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, " ")
}

// WeatherString joins present-weather codes.
func WeatherString(codes []string) string {
	return strings.Join(codes, " ")
}

// NormalizeMetar flattens one decoded METAR into a CSV-ready row. fetchedAt
// should already be in the configured output zone.
func NormalizeMetar(airport models.Airport, fetchedAt time.Time, m *avwx.METARResponse) models.MetarReport {
	return models.MetarReport{
		Timestamp:    fetchedAt,
		Airport:      airport.Name,
		ICAO:         m.Station,
		TemperatureC: m.Temperature.String(),
		DewpointC:    m.Dewpoint.String(),
		WindDirDeg:   m.WindDirection.String(),
		WindSpeedKt:  m.WindSpeed.String(),
		WindGustKt:   m.WindGust.String(),
		VisibilityM:  m.Visibility.String(),
		PressureHpa:  m.Altimeter.String(),
		Weather:      WeatherString(m.WxCodes),
		Clouds:       CloudString(m.Clouds),
		Raw:          string(m.Raw),
	}
}
