package weather

import (
	"fmt"
	"strings"
	"time"
)

// Raw payload shapes as returned by the upstream APIs. Only the fields the
// normalizers read are declared; everything else is discarded on decode.

type OpenWeatherCurrent struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain,omitempty"`
	Clouds *struct {
		All float64 `json:"all"`
	} `json:"clouds,omitempty"`
}

type OpenMeteoCurrent struct {
	Current struct {
		Time             string  `json:"time"`
		Temperature2m    float64 `json:"temperature_2m"`
		RelativeHumidity float64 `json:"relative_humidity_2m"`
		PressureMsl      float64 `json:"pressure_msl"`
		WindSpeed10m     float64 `json:"wind_speed_10m"`
		WindDirection10m float64 `json:"wind_direction_10m"`
		Precipitation    float64 `json:"precipitation"`
		CloudCover       float64 `json:"cloud_cover"`
	} `json:"current"`
}

type OpenWeatherForecast struct {
	List []OpenWeatherForecastEntry `json:"list"`
}

type OpenWeatherForecastEntry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain *struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain,omitempty"`
	Pop float64 `json:"pop"`
}

type OpenMeteoForecast struct {
	Daily struct {
		Time                        []string  `json:"time"`
		Temperature2mMax            []float64 `json:"temperature_2m_max"`
		Temperature2mMin            []float64 `json:"temperature_2m_min"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		WindSpeed10mMax             []float64 `json:"wind_speed_10m_max"`
		WindDirection10mDominant    []float64 `json:"wind_direction_10m_dominant"`
	} `json:"daily"`
}

// NormalizeOpenWeatherCurrent maps an OpenWeatherMap current-weather payload
// into the unified shape. Missing rain and cloud blocks default to zero; the
// Unix timestamp is converted to ISO-8601 UTC.
func NormalizeOpenWeatherCurrent(raw *OpenWeatherCurrent) (*CurrentConditions, error) {
	if raw == nil || raw.Dt == 0 {
		return nil, fmt.Errorf("openweathermap current payload is missing the observation timestamp")
	}

	precipitation := 0.0
	if raw.Rain != nil {
		precipitation = raw.Rain.OneHour
	}

	cloudCover := 0.0
	if raw.Clouds != nil {
		cloudCover = raw.Clouds.All
	}

	return &CurrentConditions{
		Timestamp:     time.Unix(raw.Dt, 0).UTC().Format(time.RFC3339),
		Temperature:   raw.Main.Temp,
		Humidity:      raw.Main.Humidity,
		Pressure:      raw.Main.Pressure,
		WindSpeed:     raw.Wind.Speed,
		WindDirection: raw.Wind.Deg,
		Precipitation: precipitation,
		CloudCover:    cloudCover,
	}, nil
}

// NormalizeOpenMeteoCurrent maps an Open-Meteo current payload into the
// unified shape. The timestamp is already ISO-8601 local time and is passed
// through verbatim.
func NormalizeOpenMeteoCurrent(raw *OpenMeteoCurrent) (*CurrentConditions, error) {
	if raw == nil || raw.Current.Time == "" {
		return nil, fmt.Errorf("open-meteo current payload is missing the observation timestamp")
	}

	return &CurrentConditions{
		Timestamp:     raw.Current.Time,
		Temperature:   raw.Current.Temperature2m,
		Humidity:      raw.Current.RelativeHumidity,
		Pressure:      raw.Current.PressureMsl,
		WindSpeed:     raw.Current.WindSpeed10m,
		WindDirection: raw.Current.WindDirection10m,
		Precipitation: raw.Current.Precipitation,
		CloudCover:    raw.Current.CloudCover,
	}, nil
}

type dayAccumulator struct {
	temps         []float64
	precipitation []float64
	probabilities []float64
	windSpeeds    []float64
	windDirs      []float64
}

// NormalizeOpenWeatherForecast collapses the OpenWeatherMap 3-hourly series
// into one entry per calendar date: max/min of the period temperatures, sum
// of precipitation, max probability (converted from a 0-1 fraction to 0-100),
// max wind speed, and the middle period's wind direction as the
// representative value for the day.
func NormalizeOpenWeatherForecast(raw *OpenWeatherForecast) ([]ForecastDay, error) {
	if raw == nil || len(raw.List) == 0 {
		return nil, fmt.Errorf("openweathermap forecast payload has no entries")
	}

	grouped := make(map[string]*dayAccumulator)
	var order []string

	for i := range raw.List {
		entry := &raw.List[i]
		date, _, found := strings.Cut(entry.DtTxt, " ")
		if !found || date == "" {
			return nil, fmt.Errorf("openweathermap forecast entry has malformed timestamp %q", entry.DtTxt)
		}

		acc, ok := grouped[date]
		if !ok {
			acc = &dayAccumulator{}
			grouped[date] = acc
			order = append(order, date)
		}

		rain := 0.0
		if entry.Rain != nil {
			rain = entry.Rain.ThreeHours
		}

		acc.temps = append(acc.temps, entry.Main.Temp)
		acc.precipitation = append(acc.precipitation, rain)
		acc.probabilities = append(acc.probabilities, entry.Pop*100)
		acc.windSpeeds = append(acc.windSpeeds, entry.Wind.Speed)
		acc.windDirs = append(acc.windDirs, entry.Wind.Deg)
	}

	days := make([]ForecastDay, 0, len(order))
	for _, date := range order {
		acc := grouped[date]
		days = append(days, ForecastDay{
			Date:                     date,
			MaxTemperature:           maxOf(acc.temps),
			MinTemperature:           minOf(acc.temps),
			PrecipitationProbability: maxOf(acc.probabilities),
			PrecipitationAmount:      sumOf(acc.precipitation),
			WindSpeed:                maxOf(acc.windSpeeds),
			WindDirection:            acc.windDirs[len(acc.windDirs)/2],
		})
	}

	return days, nil
}

// NormalizeOpenMeteoForecast maps the Open-Meteo daily struct-of-arrays
// payload into one ForecastDay per index. All arrays must be at least as long
// as the time axis.
func NormalizeOpenMeteoForecast(raw *OpenMeteoForecast) ([]ForecastDay, error) {
	if raw == nil || len(raw.Daily.Time) == 0 {
		return nil, fmt.Errorf("open-meteo forecast payload has no daily entries")
	}

	d := raw.Daily
	n := len(d.Time)
	for name, length := range map[string]int{
		"temperature_2m_max":            len(d.Temperature2mMax),
		"temperature_2m_min":            len(d.Temperature2mMin),
		"precipitation_probability_max": len(d.PrecipitationProbabilityMax),
		"precipitation_sum":             len(d.PrecipitationSum),
		"wind_speed_10m_max":            len(d.WindSpeed10mMax),
		"wind_direction_10m_dominant":   len(d.WindDirection10mDominant),
	} {
		if length < n {
			return nil, fmt.Errorf("open-meteo forecast field %s has %d entries, expected %d", name, length, n)
		}
	}

	days := make([]ForecastDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, ForecastDay{
			Date:                     d.Time[i],
			MaxTemperature:           d.Temperature2mMax[i],
			MinTemperature:           d.Temperature2mMin[i],
			PrecipitationProbability: d.PrecipitationProbabilityMax[i],
			PrecipitationAmount:      d.PrecipitationSum[i],
			WindSpeed:                d.WindSpeed10mMax[i],
			WindDirection:            d.WindDirection10mDominant[i],
		})
	}

	return days, nil
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func sumOf(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
