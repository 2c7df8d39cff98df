package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuel/go-smsspam/classifier"
)

func TestCompute(t *testing.T) {
	const h, s = classifier.Ham, classifier.Spam
	truth := []classifier.Label{h, h, h, h, h, h, s, s, s, s}
	pred := []classifier.Label{h, h, h, h, h, s, s, s, s, h}

	m, err := Compute(truth, pred)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Total)
	assert.InDelta(t, 0.8, m.Accuracy, 1e-12)
	assert.InDelta(t, 0.75, m.Precision, 1e-12)
	assert.InDelta(t, 0.75, m.Recall, 1e-12)
	assert.InDelta(t, 0.75, m.F1, 1e-12)
	assert.Equal(t, 5, m.Count(classifier.Ham, classifier.Ham))
	assert.Equal(t, 1, m.Count(classifier.Ham, classifier.Spam))
	assert.Equal(t, 1, m.Count(classifier.Spam, classifier.Ham))
	assert.Equal(t, 3, m.Count(classifier.Spam, classifier.Spam))
}

func TestComputeNoPositives(t *testing.T) {
	m, err := Compute([]classifier.Label{classifier.Ham, classifier.Ham}, []classifier.Label{classifier.Ham, classifier.Ham})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1)
	assert.Equal(t, 0, m.Count(classifier.Spam, classifier.Spam))
}

func TestComputeErrors(t *testing.T) {
	_, err := Compute(nil, nil)
	assert.Error(t, err)
	_, err = Compute([]classifier.Label{classifier.Ham}, []classifier.Label{classifier.Ham, classifier.Spam})
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	m, err := Compute([]classifier.Label{classifier.Ham, classifier.Spam, classifier.Spam}, []classifier.Label{classifier.Ham, classifier.Spam, classifier.Ham})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, m))
	out := buf.String()
	assert.Contains(t, out, "Accuracy:  66.67%")
	assert.Contains(t, out, "Precision: 100.00%")
	assert.Contains(t, out, "Recall:    50.00%")
	assert.Contains(t, out, "Actual SPAM identified as HAM (Missed): 1")
	assert.Contains(t, out, "Actual HAM identified as SPAM (Error): 0")
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResults(&buf, []Result{
		{Text: "Free entry, call now", Label: "spam", Predicted: classifier.Spam},
		{Text: `He said "hi"`, Label: "ham", Predicted: classifier.Ham},
		{Text: "", Label: "ham", Predicted: classifier.Spam},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"text,label,prediction_label",
		`"Free entry, call now",spam,SPAM`,
		`"He said ""hi""",ham,HAM`,
		",ham,SPAM",
	}, lines)
}
