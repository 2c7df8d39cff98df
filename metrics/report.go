package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/samuel/go-smsspam/classifier"
)

// Result is one row of the results table.
type Result struct {
	Text      string
	Label     string // label as it appeared in the dataset
	Predicted classifier.Label
}

// ResultsHeader is the first row written by WriteResults.
var ResultsHeader = []string{"text", "label", "prediction_label"}

// WriteResults writes rows as CSV. Predictions are upper-cased (SPAM/HAM).
func WriteResults(w io.Writer, rows []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultsHeader); err != nil {
		return errors.Wrap(err, "metrics: write header")
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Text, r.Label, strings.ToUpper(r.Predicted.String())}); err != nil {
			return errors.Wrap(err, "metrics: write row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "metrics: flush")
}

// WriteReport prints a human readable performance report.
func WriteReport(w io.Writer, m Metrics) error {
	rule := strings.Repeat("=", 40)
	thin := strings.Repeat("-", 40)
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "SMS SPAM DETECTOR PERFORMANCE")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Messages:  %d\n", m.Total)
	fmt.Fprintf(&b, "Accuracy:  %.2f%%\n", m.Accuracy*100)
	fmt.Fprintf(&b, "Precision: %.2f%%\n", m.Precision*100)
	fmt.Fprintf(&b, "Recall:    %.2f%%\n", m.Recall*100)
	fmt.Fprintf(&b, "F1 Score:  %.2f%%\n", m.F1*100)
	fmt.Fprintln(&b, thin)
	fmt.Fprintln(&b, "CONFUSION MATRIX:")
	fmt.Fprintf(&b, "Actual HAM identified as HAM: %d\n", m.Count(classifier.Ham, classifier.Ham))
	fmt.Fprintf(&b, "Actual HAM identified as SPAM (Error): %d\n", m.Count(classifier.Ham, classifier.Spam))
	fmt.Fprintf(&b, "Actual SPAM identified as HAM (Missed): %d\n", m.Count(classifier.Spam, classifier.Ham))
	fmt.Fprintf(&b, "Actual SPAM identified as SPAM: %d\n", m.Count(classifier.Spam, classifier.Spam))
	fmt.Fprintln(&b, rule)
	_, err := io.WriteString(w, b.String())
	return err
}
