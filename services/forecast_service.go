package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

// FeatureColumns is the exact column set the revenue model is trained on.
// Order matters: feature matrices are built in this order and validated
// against the model artifact before every predict call.
var FeatureColumns = []string{"month_ordinal", "lag_1", "lag_2", "rolling_mean"}

// MaxLift caps the strategy-simulator adjustment at +50%.
const MaxLift = 0.5

// RevenueModel is the serving contract for the pre-trained regressor. The
// artifact is opaque to the scorer beyond its feature names.
type RevenueModel interface {
	FeatureNames() []string
	Predict(rows [][]float64) ([]float64, error)
}

// TreeNode is one node of a serialized regression tree. Internal nodes
// route x[Feature] <= Threshold to Left, else Right; leaves carry Value.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

// Tree is a flat-array regression tree; node 0 is the root.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) predict(x []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// BoostedModel is the JSON-serialized gradient-boosted ensemble produced by
// cmd/train. Prediction is BaseScore + LearningRate * sum of tree outputs.
type BoostedModel struct {
	Features     []string `json:"features"`
	BaseScore    float64  `json:"base_score"`
	LearningRate float64  `json:"learning_rate"`
	Trees        []Tree   `json:"trees"`
}

func (m *BoostedModel) FeatureNames() []string {
	return m.Features
}

func (m *BoostedModel) Predict(rows [][]float64) ([]float64, error) {
	preds := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Features) {
			return nil, fmt.Errorf("%w: row has %d features, model expects %d",
				models.ErrFeatureMismatch, len(row), len(m.Features))
		}
		sum := 0.0
		for _, tree := range m.Trees {
			sum += tree.predict(row)
		}
		preds[i] = m.BaseScore + m.LearningRate*sum
	}
	return preds, nil
}

// LoadRevenueModel reads a model artifact from disk. Any failure (missing
// file, bad JSON, empty ensemble) maps to models.ErrModelUnavailable so the
// API layer can answer with a single clear condition.
func LoadRevenueModel(path string) (*BoostedModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrModelUnavailable, path)
	}
	var m BoostedModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrModelUnavailable, path, err)
	}
	if len(m.Features) == 0 || len(m.Trees) == 0 {
		return nil, fmt.Errorf("%w: %s: empty ensemble", models.ErrModelUnavailable, path)
	}
	return &m, nil
}

// Save writes the artifact, creating the parent directory if needed.
func (m *BoostedModel) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ScoreForecast runs the model once over the whole feature table and applies
// the multiplicative lift to produce the simulated series. Both outputs are
// parallel to the input rows. The feature column set is checked against the
// model before predict is invoked, never after.
func ScoreForecast(model RevenueModel, features []models.MonthlyFeatureRow, lift float64) (baseline, simulated []float64, err error) {
	if lift < 0 || lift > MaxLift {
		return nil, nil, fmt.Errorf("lift %.3f outside [0, %.1f]", lift, MaxLift)
	}
	if !columnsMatch(model.FeatureNames(), FeatureColumns) {
		return nil, nil, fmt.Errorf("%w: model expects %v, serving %v",
			models.ErrFeatureMismatch, model.FeatureNames(), FeatureColumns)
	}

	rows := FeatureMatrix(features)
	baseline, err = model.Predict(rows)
	if err != nil {
		return nil, nil, err
	}
	simulated = make([]float64, len(baseline))
	for i, b := range baseline {
		simulated[i] = b * (1 + lift)
	}
	return baseline, simulated, nil
}

// FeatureMatrix lays out feature rows in FeatureColumns order.
func FeatureMatrix(features []models.MonthlyFeatureRow) [][]float64 {
	rows := make([][]float64, len(features))
	for i, f := range features {
		rows[i] = []float64{float64(f.Ordinal), f.Lag1, f.Lag2, f.RollingMean}
	}
	return rows
}

func columnsMatch(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
