package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioGroupMean(t *testing.T) {
	subj := mustSeries(t, "subject", []string{"m", "b", "m", "p", "m", "b", "m", "p"})
	score := mustCube(t, []int{65, 80, 95, 52, 35, 50, 89, 95}, subj)

	grouped, err := score.Group("subject", "mean")
	require.NoError(t, err)

	ax, err := grouped.Axis("subject")
	require.NoError(t, err)
	assert.True(t, ax.IsIndex())
	// first-occurrence order of the input labels
	assert.Equal(t, Labels{"m", "b", "p"}, ax.Labels())
	assertValues(t, grouped, []float64{71.0, 65.0, 73.5})
}

func TestGroupSum(t *testing.T) {
	subj := mustSeries(t, "subject", []string{"a", "b", "a"})
	score := mustCube(t, []int{1, 10, 2}, subj)

	grouped, err := score.Group("subject", "sum")
	require.NoError(t, err)
	assertValues(t, grouped, []float64{3, 10})
}

func TestGroupMinMax(t *testing.T) {
	subj := mustSeries(t, "k", []string{"a", "b", "a", "b"})
	c := mustCube(t, []int{4, 9, 2, 7}, subj)

	mn, err := c.Group("k", "min")
	require.NoError(t, err)
	assertValues(t, mn, []float64{2, 7})

	mx, err := c.Group("k", "max")
	require.NoError(t, err)
	assertValues(t, mx, []float64{4, 9})
}

func TestGroupOnMatrixAxis(t *testing.T) {
	subj := mustSeries(t, "subject", []string{"a", "b", "a"})
	metric := mustIndex(t, "metric", []string{"lo", "hi"})
	c := mustCube(t, []int{
		1, 2,
		10, 20,
		3, 4,
	}, subj, metric)

	grouped, err := c.Group("subject", "sum")
	require.NoError(t, err)
	assert.Equal(t, []string{"subject", "metric"}, grouped.Axes().Names())
	assert.Equal(t, []int{2, 2}, grouped.Shape())
	assertValues(t, grouped, []float64{4, 6, 10, 20})
}

func TestGroupOnIndexAxisIsIdentityPartition(t *testing.T) {
	k := mustIndex(t, "k", []string{"a", "b"})
	c := mustCube(t, []int{3, 4}, k)

	grouped, err := c.Group("k", "sum")
	require.NoError(t, err)
	ax, err := grouped.Axis("k")
	require.NoError(t, err)
	assert.Equal(t, Labels{"a", "b"}, ax.Labels())
	assertValues(t, grouped, []float64{3, 4})
}

func TestGroupRejectsUnknownReducer(t *testing.T) {
	subj := mustSeries(t, "subject", []string{"a", "b"})
	c := mustCube(t, []int{1, 2}, subj)

	_, err := c.Group("subject", "first")
	assert.ErrorIs(t, err, ErrNonGroupableReducer)

	_, err = c.Group("subject", "")
	assert.ErrorIs(t, err, ErrNonGroupableReducer)
}

func TestGroupUnknownAxis(t *testing.T) {
	subj := mustSeries(t, "subject", []string{"a", "b"})
	c := mustCube(t, []int{1, 2}, subj)

	_, err := c.Group("nope", "sum")
	assert.ErrorIs(t, err, ErrAxisNotFound)
}
