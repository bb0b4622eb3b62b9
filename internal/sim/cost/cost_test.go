package cost

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want Cost
	}{
		{in: "", want: Cost{}},
		{in: "10T 15$", want: Of(Tritanium, 10).Add(Of(Money, 15))},
		{in: "T100 D100 M100", want: Of(Tritanium, 100).Add(Of(Duranium, 100)).Add(Of(Molybdenum, 100))},
		{in: "T402D120M340$900", want: MustParse("402T 120D 340M 900$")},
		{in: "100mc 1s", want: Of(Money, 100).Add(Of(Supplies, 1))},
		{in: "-5T", want: Of(Tritanium, -5)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestParseRejectsDanglingTerms(t *testing.T) {
	for _, in := range []string{"10", "T", "10 20T", "T D10", "10X", "1TDM 1$"} {
		_, err := Parse(in)
		require.Error(t, err, in)
	}
}

func TestStringOrderAndZero(t *testing.T) {
	c := MustParse("118$ 50S 12M 3D 13T")
	require.Equal(t, "13T 3D 12M 50S 118$", c.String())
	require.Equal(t, "", Cost{}.String())
	require.Equal(t, "-100T", Of(Tritanium, -100).String())
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10T 15$")
	b := MustParse("1T 1D 1M 1$")
	require.Equal(t, "13T 3D 3M 18$", a.Add(b.Scale(3)).String())
	require.Equal(t, "9T -1D -1M 14$", a.Sub(b).String())
	require.True(t, a.Sub(a).IsZero())
	require.False(t, a.Neg().IsNonNegative())
	require.True(t, a.IsNonNegative())
	require.Equal(t, int32(0), a.Get(Kind(42)))
}

func TestArithmeticSaturates(t *testing.T) {
	torp := MustParse("1T 5$")
	big := torp.Scale(858993460)
	require.Equal(t, int32(858993460), big.Get(Tritanium))
	require.Equal(t, int32(math.MaxInt32), big.Get(Money))
	require.Equal(t, int32(math.MinInt32), torp.Scale(-858993460).Get(Money))
	require.Equal(t, int32(math.MaxInt32), big.Add(torp).Get(Money))
	require.Equal(t, int32(math.MinInt32), big.Neg().Sub(torp).Get(Money))
}

func TestCodecs(t *testing.T) {
	var doc struct {
		Price Cost `yaml:"price"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("price: \"T3 M2 $100\"\n"), &doc))
	require.Equal(t, "3T 2M 100$", doc.Price.String())

	err := yaml.Unmarshal([]byte("price: \"3Q\"\n"), &doc)
	require.Error(t, err)

	var j struct {
		Cost Cost `json:"cost"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"cost":"1M 10S"}`), &j))
	require.Equal(t, MustParse("1M 10S"), j.Cost)
	out, err := json.Marshal(j)
	require.NoError(t, err)
	require.JSONEq(t, `{"cost":"1M 10S"}`, string(out))
}
