package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Report holds the fields rendered for one lookup.
type Report struct {
	City        string
	Temperature float64
	Pressure    float64
	Humidity    float64
	Description string
}

// String renders the report as four labelled lines.
func (r Report) String() string {
	return fmt.Sprintf("Temperature: %s°C\nPressure: %s hPa\nHumidity: %s%%\nDescription: %s",
		formatNumber(r.Temperature),
		formatNumber(r.Pressure),
		formatNumber(r.Humidity),
		r.Description,
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// payload is the subset of the API response that is read.
type payload struct {
	Name    string `json:"name"`
	Main    *struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// code accepts the API's status code as either a JSON number or a string;
// successful responses send 200, errors send "404".
type code string

func (c *code) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = code(n.String())
	return nil
}
