package models

import "time"

// Airport maps a short display name to the ICAO code the weather API uses.
type Airport struct {
	Name string
	ICAO string
}

// Layer values for HourlyRow, distinguishing the active base forecast from
// temporary overlay conditions.
const (
	LayerBase  = "BASE"
	LayerTempo = "TEMPO"
)

// MetarReport is one normalized observation, flattened for CSV output.
// Numeric fields are already rendered as strings; missing values are empty.
type MetarReport struct {
	Timestamp    time.Time
	Airport      string
	ICAO         string
	TemperatureC string
	DewpointC    string
	WindDirDeg   string
	WindSpeedKt  string
	WindGustKt   string
	VisibilityM  string
	PressureHpa  string
	Weather      string
	Clouds       string
	Raw          string
}

// MetarFields is the CSV column order for METAR rows.
var MetarFields = []string{
	"timestamp", "airport", "icao", "temperature_c", "dewpoint_c",
	"wind_dir_deg", "wind_speed_kt", "wind_gust_kt", "visibility_m",
	"pressure_hpa", "weather", "clouds", "raw",
}

func (r MetarReport) Record() []string {
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.Airport,
		r.ICAO,
		r.TemperatureC,
		r.DewpointC,
		r.WindDirDeg,
		r.WindSpeedKt,
		r.WindGustKt,
		r.VisibilityM,
		r.PressureHpa,
		r.Weather,
		r.Clouds,
		r.Raw,
	}
}

// HourlyRow is one hour of expanded TAF forecast. Rows are terminal: written
// once, never mutated.
type HourlyRow struct {
	Station      string
	ForecastTime time.Time
	Layer        string
	Wind         string
	Visibility   string
	Weather      string
	Clouds       string
	Raw          string
}

// TafFields is the CSV column order for expanded TAF rows.
var TafFields = []string{
	"station", "forecast_time", "layer", "wind", "visibility",
	"weather", "clouds", "raw",
}

func (r HourlyRow) Record() []string {
	return []string{
		r.Station,
		r.ForecastTime.Format("2006-01-02 15:04"),
		r.Layer,
		r.Wind,
		r.Visibility,
		r.Weather,
		r.Clouds,
		r.Raw,
	}
}
