package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"90s","b":1000000000}`), &v))
	assert.Equal(t, 90*time.Second, v.A.Duration)
	assert.Equal(t, time.Second, v.B.Duration)

	require.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var v struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 5m\nb: 2000\n"), &v))
	assert.Equal(t, 5*time.Minute, v.A.Duration)
	assert.Equal(t, 2000*time.Nanosecond, v.B.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: time.Minute})
	require.NoError(t, err)
	assert.JSONEq(t, `"1m0s"`, string(b))
}

func TestEndOfDay(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)
	got := EndOfDay(time.Date(2024, 3, 9, 0, 0, 1, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 9, 23, 59, 59, 999999999, loc), got)

	last := time.Date(2024, 3, 9, 23, 59, 59, 500000000, loc)
	assert.True(t, EndOfDay(last).After(last))
	assert.True(t, EndOfDay(last).Add(time.Nanosecond).Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, loc)))
}

func TestDate_DaysSince(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 1}

	assert.Equal(t, 0, d.DaysSince(d))
	assert.Equal(t, 1, d.DaysSince(Date{Year: 2024, Month: time.February, Day: 29}))
	assert.Equal(t, 366, d.DaysSince(Date{Year: 2023, Month: time.March, Day: 1}))
	assert.Equal(t, -2, d.DaysSince(d.AddDays(2)))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	type rec struct {
		D *Date `json:"d"`
		Z Date  `json:"z"`
	}
	in := rec{D: &Date{Year: 2025, Month: time.December, Day: 31}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-12-31","z":null}`, string(b))

	var out rec
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2025-13-01")
	require.Error(t, err)
}
