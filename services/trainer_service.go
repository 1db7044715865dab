package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

// TrainConfig carries the boosting hyperparameters. The defaults are fixed,
// not tuned per run: the trainer is an offline batch job, not an experiment
// harness.
type TrainConfig struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int
	TestFraction float64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Rounds:       500,
		LearningRate: 0.01,
		MaxDepth:     6,
		TestFraction: 0.2,
	}
}

// TrainReport summarizes a training run for the CLI output.
type TrainReport struct {
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
	R2        float64 `json:"r2"`
}

// TrainRevenueModel fits a gradient-boosted regression ensemble on the
// monthly feature table. The split is chronological with no shuffling:
// shuffling a time series would leak the future into training. progress is
// called once per boosting round when non-nil.
func TrainRevenueModel(features []models.MonthlyFeatureRow, cfg TrainConfig, progress func()) (*BoostedModel, *TrainReport, error) {
	nTest := int(math.Round(float64(len(features)) * cfg.TestFraction))
	if nTest < 1 {
		nTest = 1
	}
	nTrain := len(features) - nTest
	if nTrain < 2 {
		return nil, nil, fmt.Errorf("not enough monthly history to train: %d feature rows", len(features))
	}

	matrix := FeatureMatrix(features)
	trainX, testX := matrix[:nTrain], matrix[nTrain:]
	trainY := make([]float64, nTrain)
	testY := make([]float64, nTest)
	for i, f := range features[:nTrain] {
		trainY[i] = f.Revenue
	}
	for i, f := range features[nTrain:] {
		testY[i] = f.Revenue
	}

	model := &BoostedModel{
		Features:     append([]string(nil), FeatureColumns...),
		BaseScore:    mean(trainY),
		LearningRate: cfg.LearningRate,
	}

	preds := make([]float64, nTrain)
	for i := range preds {
		preds[i] = model.BaseScore
	}
	residual := make([]float64, nTrain)
	idx := make([]int, nTrain)
	for i := range idx {
		idx[i] = i
	}

	for round := 0; round < cfg.Rounds; round++ {
		for i := range residual {
			residual[i] = trainY[i] - preds[i]
		}
		tree := fitRegressionTree(trainX, residual, idx, cfg.MaxDepth)
		for i := range preds {
			preds[i] += cfg.LearningRate * tree.predict(trainX[i])
		}
		model.Trees = append(model.Trees, tree)
		if progress != nil {
			progress()
		}
	}

	testPreds, err := model.Predict(testX)
	if err != nil {
		return nil, nil, err
	}
	report := &TrainReport{
		TrainRows: nTrain,
		TestRows:  nTest,
		R2:        rSquared(testY, testPreds),
	}
	return model, report, nil
}

// fitRegressionTree grows a depth-limited CART tree on the residuals using
// greedy variance-reduction splits.
func fitRegressionTree(x [][]float64, y []float64, idx []int, maxDepth int) Tree {
	t := Tree{}
	growNode(&t, x, y, idx, 0, maxDepth)
	return t
}

// growNode appends the subtree for idx and returns its root node index.
func growNode(t *Tree, x [][]float64, y []float64, idx []int, depth, maxDepth int) int {
	if depth >= maxDepth || len(idx) < 2 {
		return appendLeaf(t, y, idx)
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return appendLeaf(t, y, idx)
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	nodeIdx := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{Feature: feature, Threshold: threshold})
	leftIdx := growNode(t, x, y, left, depth+1, maxDepth)
	rightIdx := growNode(t, x, y, right, depth+1, maxDepth)
	t.Nodes[nodeIdx].Left = leftIdx
	t.Nodes[nodeIdx].Right = rightIdx
	return nodeIdx
}

func appendLeaf(t *Tree, y []float64, idx []int) int {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}
	nodeIdx := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{Leaf: true, Value: value})
	return nodeIdx
}

// bestSplit scans every feature for the threshold that minimizes the summed
// squared error of the two children. Returns ok=false when no split
// separates the samples (all feature values tied).
func bestSplit(x [][]float64, y []float64, idx []int) (feature int, threshold float64, ok bool) {
	bestSSE := math.Inf(1)
	nFeatures := len(x[idx[0]])

	order := make([]int, len(idx))
	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		// prefix sums over the sorted order
		total, totalSq := 0.0, 0.0
		for _, i := range order {
			total += y[i]
			totalSq += y[i] * y[i]
		}

		leftSum, leftSq := 0.0, 0.0
		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			cur, next := x[i][f], x[order[pos+1]][f]
			if cur == next {
				continue
			}

			nLeft := float64(pos + 1)
			nRight := float64(len(order) - pos - 1)
			sse := (leftSq - leftSum*leftSum/nLeft) +
				((totalSq - leftSq) - (total-leftSum)*(total-leftSum)/nRight)
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// rSquared reports 1 - SSres/SStot; a constant target yields 0.
func rSquared(actual, predicted []float64) float64 {
	m := mean(actual)
	ssRes, ssTot := 0.0, 0.0
	for i, a := range actual {
		ssRes += (a - predicted[i]) * (a - predicted[i])
		ssTot += (a - m) * (a - m)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
