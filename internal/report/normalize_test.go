package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/avwxlog/internal/avwx"
	"github.com/lox/avwxlog/internal/models"
)

func TestWindString(t *testing.T) {
	null := avwx.Value{}
	tests := []struct {
		name             string
		dir, speed, gust avwx.Value
		want             string
	}{
		{"direction speed and gust", avwx.Number(270), avwx.Number(15), avwx.Number(25), "27015G25KT"},
		{"no gust", avwx.Number(270), avwx.Number(15), null, "27015KT"},
		{"zero gust dropped", avwx.Number(270), avwx.Number(15), avwx.Number(0), "27015KT"},
		{"zero-padded", avwx.Number(90), avwx.Number(5), null, "09005KT"},
		{"calm", avwx.Number(0), avwx.Number(0), null, "00000KT"},
		{"missing speed", avwx.Number(270), null, null, ""},
		{"missing direction", null, avwx.Number(15), null, ""},
		{"variable direction", avwx.Text("VRB"), avwx.Number(15), null, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindString(tt.dir, tt.speed, tt.gust))
		})
	}
}

func TestCloudString(t *testing.T) {
	few, bkn := 20, 30
	layers := []avwx.CloudLayer{
		{Type: "FEW", Altitude: &few},
		{Type: "BKN", Altitude: &bkn},
		{Type: "VV"},
	}
	assert.Equal(t, "FEW20 BKN30 VV", CloudString(layers))
	assert.Equal(t, "", CloudString(nil))
}

func TestWeatherString(t *testing.T) {
	assert.Equal(t, "-RA BR", WeatherString([]string{"-RA", "BR"}))
	assert.Equal(t, "", WeatherString(nil))
}

func TestNormalizeMetar(t *testing.T) {
	src := `{
		"station": "RJAA",
		"temperature": {"value": 28},
		"dewpoint": {"value": 22},
		"wind_direction": {"value": 200},
		"wind_speed": {"value": 12},
		"wind_gust": null,
		"visibility": {"value": 9999},
		"altimeter": {"value": 1012},
		"wx_codes": ["-RA"],
		"clouds": [{"type": "BKN", "altitude": 30}],
		"raw": "RJAA 270900Z 20012KT 9999 -RA BKN030 28/22 Q1012"
	}`
	var m avwx.METARResponse
	require.NoError(t, json.Unmarshal([]byte(src), &m))

	jst := time.FixedZone("UTC+9", 9*3600)
	fetchedAt := time.Date(2026, 8, 27, 18, 30, 0, 0, jst)
	apt := models.Airport{Name: "NRT", ICAO: "RJAA"}

	row := NormalizeMetar(apt, fetchedAt, &m)

	assert.Equal(t, "NRT", row.Airport)
	assert.Equal(t, "RJAA", row.ICAO)
	assert.Equal(t, "28", row.TemperatureC)
	assert.Equal(t, "22", row.DewpointC)
	assert.Equal(t, "200", row.WindDirDeg)
	assert.Equal(t, "12", row.WindSpeedKt)
	assert.Equal(t, "", row.WindGustKt)
	assert.Equal(t, "9999", row.VisibilityM)
	assert.Equal(t, "1012", row.PressureHpa)
	assert.Equal(t, "-RA", row.Weather)
	assert.Equal(t, "BKN30", row.Clouds)
	assert.Equal(t, "RJAA 270900Z 20012KT 9999 -RA BKN030 28/22 Q1012", row.Raw)

	rec := row.Record()
	require.Len(t, rec, len(models.MetarFields))
	assert.Equal(t, "2026-08-27T18:30:00+09:00", rec[0])
}

func TestNormalizeRulesAreIdempotent(t *testing.T) {
	dir, speed, gust := avwx.Number(270), avwx.Number(15), avwx.Number(25)
	first := WindString(dir, speed, gust)
	assert.Equal(t, first, WindString(dir, speed, gust))
}
