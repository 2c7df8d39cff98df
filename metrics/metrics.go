// Package metrics scores predicted labels against ground truth and writes
// the report and results table.
package metrics

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/evaluation"

	"github.com/samuel/go-smsspam/classifier"
)

// Positive is the class precision, recall and F1 are reported for.
const Positive = classifier.Spam

// Metrics holds the aggregate figures of one evaluation.
type Metrics struct {
	Total     int
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Matrix    evaluation.ConfusionMatrix // actual -> predicted -> count
}

// Count returns how many messages of class actual were predicted as predicted.
func (m Metrics) Count(actual, predicted classifier.Label) int {
	return m.Matrix[actual.String()][predicted.String()]
}

// NewConfusionMatrix tallies (truth, predicted) pairs. Every label has a
// row and a column, even when it never occurs.
func NewConfusionMatrix(truth, predicted []classifier.Label) (evaluation.ConfusionMatrix, error) {
	if len(truth) != len(predicted) {
		return nil, errors.Errorf("metrics: %d true labels but %d predictions", len(truth), len(predicted))
	}
	cm := make(evaluation.ConfusionMatrix, len(classifier.Labels))
	for _, a := range classifier.Labels {
		cm[a.String()] = make(map[string]int, len(classifier.Labels))
		for _, p := range classifier.Labels {
			cm[a.String()][p.String()] = 0
		}
	}
	for i, t := range truth {
		cm[t.String()][predicted[i].String()]++
	}
	return cm, nil
}

// Compute returns accuracy over all messages and precision, recall and F1 for
// Positive. A ratio with a zero denominator is reported as 0.
func Compute(truth, predicted []classifier.Label) (Metrics, error) {
	if len(truth) == 0 {
		return Metrics{}, errors.New("metrics: no labels")
	}
	cm, err := NewConfusionMatrix(truth, predicted)
	if err != nil {
		return Metrics{}, err
	}
	class := Positive.String()
	return Metrics{
		Total:     len(truth),
		Accuracy:  finite(evaluation.GetAccuracy(cm)),
		Precision: finite(evaluation.GetPrecision(class, cm)),
		Recall:    finite(evaluation.GetRecall(class, cm)),
		F1:        finite(evaluation.GetF1Score(class, cm)),
		Matrix:    cm,
	}, nil
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
