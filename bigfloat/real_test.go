package bigfloat_test

import (
	"testing"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	bigfloat.SetDefaultPrecision(200)
}

func TestArithmetic(t *testing.T) {
	a := bigfloat.FromInt64(3)
	b := bigfloat.FromInt64(4)

	assert.Equal(t, 0, a.Add(b).Cmp(bigfloat.FromInt64(7)))
	assert.Equal(t, 0, b.Sub(a).Cmp(bigfloat.FromInt64(1)))
	assert.Equal(t, 0, a.Mul(b).Cmp(bigfloat.FromInt64(12)))
	assert.Equal(t, 0, b.Quo(a).Cmp(b.Quo(a)))
	assert.Equal(t, 0, a.Neg().Cmp(bigfloat.FromInt64(-3)))
	assert.Equal(t, 0, a.Neg().Abs().Cmp(a))
}

func TestSqrt(t *testing.T) {
	nine := bigfloat.FromInt64(9)
	three := nine.Sqrt()
	assert.Equal(t, 0, three.Cmp(bigfloat.FromInt64(3)))
}

func TestFromString(t *testing.T) {
	r, err := bigfloat.FromString("1.5")
	require.NoError(t, err)
	half := bigfloat.FromInt64(1).Add(bigfloat.FromInt64(1).Quo(bigfloat.FromInt64(2)))
	assert.Equal(t, 0, r.Cmp(half))

	_, err = bigfloat.FromString("not-a-number")
	assert.Error(t, err)
}

func TestMinMax(t *testing.T) {
	a, b := bigfloat.FromInt64(2), bigfloat.FromInt64(5)
	assert.Equal(t, 0, bigfloat.Min(a, b).Cmp(a))
	assert.Equal(t, 0, bigfloat.Max(a, b).Cmp(b))
}

func TestZeroValueUsable(t *testing.T) {
	var r bigfloat.Real
	assert.True(t, r.IsZero())
	assert.Equal(t, 0, r.Add(bigfloat.FromInt64(1)).Cmp(bigfloat.FromInt64(1)))
}

