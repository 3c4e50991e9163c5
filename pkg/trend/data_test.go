package trend

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDataPointJSON(t *testing.T) {
	var points []DataPoint
	err := json.Unmarshal([]byte(`[1, {"value": 2.5, "label": "tue"}, {"value": -3}]`), &points)
	require.NoError(t, err)
	require.Equal(t, []DataPoint{{Value: 1}, {Value: 2.5, Label: "tue"}, {Value: -3}}, points)

	b, err := json.Marshal(points)
	require.NoError(t, err)
	require.JSONEq(t, `[1, {"value": 2.5, "label": "tue"}, -3]`, string(b))

	err = json.Unmarshal([]byte(`["x"]`), &points)
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestDataPointYAML(t *testing.T) {
	var points []DataPoint
	err := yaml.Unmarshal([]byte("- 1\n- {value: 2, label: wed}\n- 0.5\n"), &points)
	require.NoError(t, err)
	require.Equal(t, []DataPoint{{Value: 1}, {Value: 2, Label: "wed"}, {Value: 0.5}}, points)
	require.Equal(t, []float64{1, 2, 0.5}, Values(points))

	err = yaml.Unmarshal([]byte("- nope\n"), &points)
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestParseData(t *testing.T) {
	tests := []struct {
		in       string
		expected []DataPoint
	}{
		{"", nil},
		{"1,2,3", Numbers(1, 2, 3)},
		{" 1 , -2.5 ,, 3e2 ", Numbers(1, -2.5, 300)},
		{"mon=1, tue = 4", []DataPoint{{Value: 1, Label: "mon"}, {Value: 4, Label: "tue"}}},
	}
	for _, tt := range tests {
		got, err := ParseData(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.expected, got, tt.in)
	}

	_, err := ParseData("1,two,3")
	require.ErrorIs(t, err, ErrInvalidData)

	points := []DataPoint{{Value: 1}, {Value: 2.5, Label: "x"}}
	round, err := ParseData(FormatData(points))
	require.NoError(t, err)
	require.Equal(t, points, round)
}

func TestValidateData(t *testing.T) {
	require.NoError(t, ValidateData(Numbers(1, 2)))
	require.NoError(t, ValidateData(nil))
	require.ErrorIs(t, ValidateData(Numbers(1, math.NaN())), ErrInvalidData)
	require.ErrorIs(t, ValidateData(Numbers(math.Inf(-1))), ErrInvalidData)
}
