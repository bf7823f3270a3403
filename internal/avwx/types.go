package avwx

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// CloudLayer is one reported cloud group.
type CloudLayer struct {
	Type     string `json:"type"`
	Altitude *int   `json:"altitude"`
}

// String renders the group as type immediately followed by altitude,
// e.g. "BKN15". A missing altitude contributes nothing.
func (c CloudLayer) String() string {
	if c.Altitude == nil {
		return c.Type
	}
	return c.Type + strconv.Itoa(*c.Altitude)
}

// RawText is a raw report field that may arrive as a string or as a list of
// tokens. Lists are joined with single spaces; null or any other shape
// decodes to the empty string.
type RawText string

func (r *RawText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*r = ""
	case data[0] == '[':
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			*r = ""
			return nil
		}
		*r = RawText(strings.Join(parts, " "))
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawText(s)
	default:
		*r = ""
	}
	return nil
}

// Issued is the API's issuance timestamp wrapper.
type Issued struct {
	DT string `json:"dt"`
}

// Period is a validity interval of ISO-8601 instants. To may be empty for
// open-ended change periods.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Segment is one forecast-change period within a TAF: the base period, a
// FROM-style supersession, or a TEMPO overlay.
type Segment struct {
	Type          string       `json:"type"`
	Time          *Period      `json:"time"`
	WindDirection Value        `json:"wind_direction"`
	WindSpeed     Value        `json:"wind_speed"`
	WindGust      Value        `json:"wind_gust"`
	Visibility    Value        `json:"visibility"`
	WxCodes       []string     `json:"wx_codes"`
	Clouds        []CloudLayer `json:"clouds"`
	Raw           RawText      `json:"raw"`
}

// TAFResponse is the decoded /taf payload.
type TAFResponse struct {
	Station   string    `json:"station"`
	Time      *Issued   `json:"time"`
	ValidTime *Period   `json:"valid_time"`
	Forecast  []Segment `json:"forecast"`
	Raw       RawText   `json:"raw"`
}

// METARResponse is the decoded /metar payload.
type METARResponse struct {
	Station       string       `json:"station"`
	Time          *Issued      `json:"time"`
	Temperature   Value        `json:"temperature"`
	Dewpoint      Value        `json:"dewpoint"`
	WindDirection Value        `json:"wind_direction"`
	WindSpeed     Value        `json:"wind_speed"`
	WindGust      Value        `json:"wind_gust"`
	Visibility    Value        `json:"visibility"`
	Altimeter     Value        `json:"altimeter"`
	WxCodes       []string     `json:"wx_codes"`
	Clouds        []CloudLayer `json:"clouds"`
	Raw           RawText      `json:"raw"`
}
