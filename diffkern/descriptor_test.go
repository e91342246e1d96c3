package diffkern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

func TestParseDescriptors(t *testing.T) {
	info := mat.NewDense(4, 3, []float64{
		0, -1, -1,
		1, 0, -1,
		2, 0, 1,
		2, 1, 1,
	})
	got, err := ParseDescriptors(info, 2)
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{
		{Count: 0, First: Unused, Second: Unused},
		{Count: 1, First: 0, Second: Unused},
		{Count: 2, First: 0, Second: 1},
		{Count: 2, First: 1, Second: 1},
	}, got)
}

func TestParseDescriptorsNarrowFormats(t *testing.T) {
	// A single column is enough when nothing is differentiated.
	got, err := ParseDescriptors(mat.NewDense(2, 1, []float64{0, 0}), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0].Count)
	assert.Equal(t, Unused, got[0].First)

	// Two columns carry up to first order.
	got, err = ParseDescriptors(mat.NewDense(1, 2, []float64{1, 2}), 3)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Count: 1, First: 2, Second: Unused}, got[0])
}

func TestParseDescriptorsErrors(t *testing.T) {
	var shapeErr *kern.ShapeError
	var cfgErr *kern.ConfigError

	// Count exceeding the available dimension slots.
	_, err := ParseDescriptors(mat.NewDense(1, 2, []float64{2, 0}), 2)
	assert.ErrorAs(t, err, &shapeErr)

	// Too many columns.
	_, err = ParseDescriptors(mat.NewDense(1, 4, []float64{0, -1, -1, -1}), 2)
	assert.ErrorAs(t, err, &shapeErr)

	// Dimension index out of range.
	_, err = ParseDescriptors(mat.NewDense(1, 2, []float64{1, 5}), 2)
	assert.ErrorAs(t, err, &shapeErr)

	// Order above two, regardless of how many slot columns the wire
	// matrix happens to carry.
	_, err = ParseDescriptors(mat.NewDense(1, 3, []float64{3, 0, 1}), 2)
	assert.ErrorAs(t, err, &cfgErr)
	_, err = ParseDescriptors(mat.NewDense(1, 2, []float64{3, 0}), 2)
	assert.ErrorAs(t, err, &cfgErr)
	_, err = ParseDescriptors(mat.NewDense(1, 1, []float64{4}), 2)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMaskToDescriptor(t *testing.T) {
	d, err := maskToDescriptor([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Count: 0, First: Unused, Second: Unused}, d)

	d, err = maskToDescriptor([]float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Count: 1, First: 1, Second: Unused}, d)

	d, err = maskToDescriptor([]float64{2, 0})
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Count: 2, First: 0, Second: 0}, d)

	d, err = maskToDescriptor([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Count: 2, First: 0, Second: 1}, d)
}

func TestMaskToDescriptorRejectsBadFlags(t *testing.T) {
	var cfgErr *kern.ConfigError
	_, err := maskToDescriptor([]float64{3, 0})
	assert.ErrorAs(t, err, &cfgErr)
	_, err = maskToDescriptor([]float64{2, 1})
	assert.ErrorAs(t, err, &cfgErr)
	_, err = maskToDescriptor([]float64{-1, 0})
	assert.ErrorAs(t, err, &cfgErr)
	_, err = maskToDescriptor([]float64{0.5, 0})
	assert.ErrorAs(t, err, &cfgErr)
}
