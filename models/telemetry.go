package models

// FeatureColumns is the canonical ordered feature list all three models and
// the scaler were fitted with. Order is load-bearing: the scaler applies
// per-feature statistics positionally.
var FeatureColumns = []string{
	"vehicle_id", "lap", "max_speed", "avg_speed", "std_speed", "avg_throttle",
	"brake_front_freq", "brake_rear_freq", "dominant_gear", "avg_steer_angle",
	"avg_long_accel", "avg_lat_accel", "avg_rpm",
	"rolling_std_lap_time", "lap_time_delta", "tire_wear_high",
	"air_temp", "track_temp", "humidity", "pressure", "wind_speed",
	"wind_direction", "rain",
}

// TelemetryMeta is the identifying portion of a prediction request, extracted
// alongside the feature vector.
type TelemetryMeta struct {
	SessionID string
	VehicleID int
	Lap       int
}

// WeatherData is the optional external weather input for the summary line.
type WeatherData struct {
	AirTemp   float64 `json:"air_temp"`
	TrackTemp float64 `json:"track_temp"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Rain      bool    `json:"rain"`
}
