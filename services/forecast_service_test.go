package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel records whether Predict ran and answers with a fixed series.
type stubModel struct {
	features []string
	out      []float64
	called   bool
}

func (s *stubModel) FeatureNames() []string { return s.features }

func (s *stubModel) Predict(rows [][]float64) ([]float64, error) {
	s.called = true
	return s.out[:len(rows)], nil
}

func featureRows(n int) []models.MonthlyFeatureRow {
	rows := make([]models.MonthlyFeatureRow, n)
	for i := range rows {
		rows[i] = models.MonthlyFeatureRow{Ordinal: i + 3, Lag1: 10, Lag2: 20, RollingMean: 15}
	}
	return rows
}

func TestTreePredict(t *testing.T) {
	// root: x[0] <= 2 ? left leaf 10 : right leaf 30
	tree := Tree{Nodes: []TreeNode{
		{Feature: 0, Threshold: 2, Left: 1, Right: 2},
		{Leaf: true, Value: 10},
		{Leaf: true, Value: 30},
	}}
	assert.InDelta(t, 10.0, tree.predict([]float64{1}), 1e-9)
	assert.InDelta(t, 10.0, tree.predict([]float64{2}), 1e-9, "boundary routes left")
	assert.InDelta(t, 30.0, tree.predict([]float64{3}), 1e-9)
}

func TestBoostedModelPredict(t *testing.T) {
	leaf := func(v float64) Tree { return Tree{Nodes: []TreeNode{{Leaf: true, Value: v}}} }
	m := &BoostedModel{
		Features:     append([]string(nil), FeatureColumns...),
		BaseScore:    100,
		LearningRate: 0.1,
		Trees:        []Tree{leaf(10), leaf(20)},
	}
	preds, err := m.Predict([][]float64{{3, 10, 20, 15}})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.InDelta(t, 103.0, preds[0], 1e-9, "base + lr * sum of tree outputs")
}

func TestBoostedModelPredict_RowWidthMismatch(t *testing.T) {
	m := &BoostedModel{
		Features: append([]string(nil), FeatureColumns...),
		Trees:    []Tree{{Nodes: []TreeNode{{Leaf: true, Value: 1}}}},
	}
	_, err := m.Predict([][]float64{{1, 2}})
	assert.ErrorIs(t, err, models.ErrFeatureMismatch)
}

func TestScoreForecast_LiftApplied(t *testing.T) {
	model := &stubModel{
		features: append([]string(nil), FeatureColumns...),
		out:      []float64{100, 200, 300},
	}
	baseline, simulated, err := ScoreForecast(model, featureRows(3), 0.15)
	require.NoError(t, err)
	require.Len(t, baseline, 3)
	require.Len(t, simulated, 3)
	for i := range baseline {
		assert.InDelta(t, baseline[i]*1.15, simulated[i], 1e-9)
	}
}

func TestScoreForecast_ZeroLift(t *testing.T) {
	model := &stubModel{
		features: append([]string(nil), FeatureColumns...),
		out:      []float64{100},
	}
	baseline, simulated, err := ScoreForecast(model, featureRows(1), 0)
	require.NoError(t, err)
	assert.Equal(t, baseline, simulated)
}

func TestScoreForecast_LiftBounds(t *testing.T) {
	model := &stubModel{features: append([]string(nil), FeatureColumns...), out: []float64{1}}

	for _, lift := range []float64{-0.01, 0.51, 1.0} {
		_, _, err := ScoreForecast(model, featureRows(1), lift)
		assert.Error(t, err, "lift %v", lift)
		assert.False(t, model.called, "predict must not run on an invalid lift")
	}

	for _, lift := range []float64{0, 0.5} {
		_, _, err := ScoreForecast(model, featureRows(1), lift)
		assert.NoError(t, err, "lift %v", lift)
	}
}

func TestScoreForecast_FeatureMismatchBeforePredict(t *testing.T) {
	model := &stubModel{features: []string{"month_ordinal", "lag_1"}, out: []float64{1}}
	_, _, err := ScoreForecast(model, featureRows(1), 0.1)
	assert.ErrorIs(t, err, models.ErrFeatureMismatch)
	assert.False(t, model.called, "column check must run before predict")
}

func TestScoreForecast_EmptyFeatures(t *testing.T) {
	model := &stubModel{features: append([]string(nil), FeatureColumns...)}
	baseline, simulated, err := ScoreForecast(model, nil, 0.1)
	require.NoError(t, err)
	assert.Empty(t, baseline)
	assert.Empty(t, simulated)
}

func TestFeatureMatrix(t *testing.T) {
	rows := FeatureMatrix([]models.MonthlyFeatureRow{
		{Ordinal: 4, Lag1: 1.5, Lag2: 2.5, RollingMean: 3.5},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, []float64{4, 1.5, 2.5, 3.5}, rows[0])
}

func TestLoadRevenueModel_Missing(t *testing.T) {
	_, err := LoadRevenueModel(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
}

func TestLoadRevenueModel_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadRevenueModel(path)
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
}

func TestLoadRevenueModel_EmptyEnsemble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"features":[],"trees":[]}`), 0o644))
	_, err := LoadRevenueModel(path)
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	m := &BoostedModel{
		Features:     append([]string(nil), FeatureColumns...),
		BaseScore:    42.5,
		LearningRate: 0.01,
		Trees: []Tree{{Nodes: []TreeNode{
			{Feature: 1, Threshold: 3.5, Left: 1, Right: 2},
			{Leaf: true, Value: -2},
			{Leaf: true, Value: 7},
		}}},
	}

	path := filepath.Join(t.TempDir(), "artifacts", "revenue_model.json")
	require.NoError(t, m.Save(path), "save creates the parent directory")

	loaded, err := LoadRevenueModel(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	in := [][]float64{{0, 0, 3.5, 0}, {0, 0, 4.0, 0}}
	want, err := m.Predict(in)
	require.NoError(t, err)
	got, err := loaded.Predict(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
