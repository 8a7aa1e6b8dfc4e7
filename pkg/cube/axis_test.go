package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIndex[T Label](t *testing.T, name string, labels []T) *Axis {
	t.Helper()
	a, err := Index(name, labels)
	require.NoError(t, err)
	return a
}

func mustSeries[T Label](t *testing.T, name string, labels []T) *Axis {
	t.Helper()
	a, err := Series(name, labels)
	require.NoError(t, err)
	return a
}

func TestAxisConstruction(t *testing.T) {
	a := mustIndex(t, "year", []int{2014, 2015})
	assert.Equal(t, "year", a.Name())
	assert.True(t, a.IsIndex())
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2014, a.At(0))

	s := mustSeries(t, "subject", []string{"m", "b", "m"})
	assert.False(t, s.IsIndex())
	assert.Equal(t, 3, s.Len())

	_, err := Index("k", []string{"a", "a"})
	assert.ErrorIs(t, err, ErrUniquenessViolation)

	_, err = Index("", []int{1})
	assert.Error(t, err)

	_, err = Series("", []int{1})
	assert.Error(t, err)

	// a series may repeat labels
	_, err = Series("k", []string{"a", "a"})
	assert.NoError(t, err)
}

func TestAxisIndexOf(t *testing.T) {
	idx := mustIndex(t, "k", []string{"a", "b", "c"})

	pos, err := idx.IndexOf("b")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	_, err = idx.IndexOf("z")
	assert.ErrorIs(t, err, ErrLabelNotFound)

	// series lookup scans to the first occurrence
	ser := mustSeries(t, "k", []string{"x", "y", "x"})
	pos, err = ser.IndexOf("x")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	_, err = ser.IndexOf("z")
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestAxisPositions(t *testing.T) {
	idx := mustIndex(t, "k", []string{"a", "b", "c", "d"})

	pos, err := idx.Positions([]any{"b", "d", "b"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 1}, pos)

	_, err = idx.Positions([]any{"a", "z"})
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestAxisFilter(t *testing.T) {
	tests := []struct {
		name       string
		axis       *Axis
		query      []any
		wantLabels []any
		wantSel    []int
		wantErr    error
	}{
		{
			name:       "index preserves own order",
			axis:       mustIndex(t, "k", []string{"a", "b", "c", "d"}),
			query:      []any{"d", "b"},
			wantLabels: []any{"b", "d"},
			wantSel:    []int{1, 3},
		},
		{
			name:       "series keeps duplicates",
			axis:       mustSeries(t, "k", []string{"a", "b", "a", "c"}),
			query:      []any{"a"},
			wantLabels: []any{"a", "a"},
			wantSel:    []int{0, 2},
		},
		{
			name:    "missing label fails",
			axis:    mustIndex(t, "k", []string{"a", "b"}),
			query:   []any{"a", "z"},
			wantErr: ErrLabelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, sel, err := tt.axis.Filter(tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSel, sel)
			assert.Equal(t, Labels(tt.wantLabels), res.Labels())
			assert.Equal(t, tt.axis.Kind(), res.Kind())
		})
	}
}

func TestAxisTake(t *testing.T) {
	idx := mustIndex(t, "k", []string{"a", "b", "c"})

	res, err := idx.Take([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, Labels{"c", "a"}, res.Labels())
	assert.True(t, res.IsIndex())

	_, err = idx.Take([]int{0, 0})
	assert.ErrorIs(t, err, ErrUniquenessViolation)

	_, err = idx.Take([]int{3})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	// a series tolerates duplicate positions
	ser := mustSeries(t, "k", []string{"x", "y"})
	res, err = ser.Take([]int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, Labels{"y", "y"}, res.Labels())
}

func TestAxisCompress(t *testing.T) {
	idx := mustIndex(t, "k", []string{"a", "b", "c"})

	res, err := idx.Compress([]bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, Labels{"a", "c"}, res.Labels())

	_, err = idx.Compress([]bool{true})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
