package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/mocurve/param"
)

func TestPerturbations(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3}
	meta := []param.ParameterMetadata{
		param.LabelMetadata("1Y"),
		param.LabelMetadata("2Y"),
		param.LabelMetadata("5Y"),
	}

	tests := []struct {
		name string
		p    param.ParameterPerturbation
		want []float64
	}{
		{name: "parallel", p: param.ParallelShift(0.5), want: []float64{1.5, 2.5, 3.5}},
		{name: "relative", p: param.RelativeShift(0.1), want: []float64{1.1, 2.2, 3.3}},
		{name: "bucket", p: param.BucketShift(1, -1), want: []float64{1, 1, 3}},
		{name: "label", p: param.LabelShift(1, "1Y", "5Y"), want: []float64{2, 2, 4}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := param.Apply(values, meta, tc.p)
			assert.InDeltaSlice(t, tc.want, got, 1e-15)
		})
	}
	assert.Equal(t, []float64{1, 2, 3}, values)
}

func TestApply_MissingMetadata(t *testing.T) {
	t.Parallel()

	got := param.Apply([]float64{1, 2}, nil, param.LabelShift(1, "1Y"))
	assert.Equal(t, []float64{1, 2}, got)
}
