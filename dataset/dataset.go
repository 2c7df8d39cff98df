// Package dataset reads labeled SMS messages and partitions them for
// training and evaluation.
package dataset

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/text/encoding/charmap"

	"github.com/samuel/go-smsspam/classifier"
)

// ErrNoCSV is returned when an archive holds no .csv entry.
var ErrNoCSV = errors.New("dataset: no .csv file in archive")

// Record is one labeled message.
type Record struct {
	Label    classifier.Label
	RawLabel string
	Text     string
	// Missing is set when the text column was empty or absent.
	Missing bool
}

// Value returns the message text, or nil when it was missing.
func (r Record) Value() interface{} {
	if r.Missing {
		return nil
	}
	return r.Text
}

// LoadArchive reads the first .csv entry of the zip archive at path. The
// entry is decoded as ISO-8859-1.
func LoadArchive(path string) ([]Record, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open archive")
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: open %s", f.Name)
		}
		defer rc.Close()
		records, err := ReadCSV(charmap.ISO8859_1.NewDecoder().Reader(rc))
		if err != nil {
			return nil, errors.WithMessage(err, f.Name)
		}
		return records, nil
	}
	return nil, errors.Wrap(ErrNoCSV, path)
}

// ReadCSV parses a header row followed by label,text rows. Columns past the
// second are ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.New("dataset: missing header row")
		}
		return nil, errors.Wrap(err, "dataset: read header")
	}

	var records []Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: row %d", row)
		}
		label, err := classifier.ParseLabel(fields[0])
		if err != nil {
			return nil, errors.WithMessagef(err, "dataset: row %d", row)
		}
		rec := Record{Label: label, RawLabel: fields[0]}
		if len(fields) < 2 || fields[1] == "" {
			rec.Missing = true
		} else {
			rec.Text = fields[1]
		}
		records = append(records, rec)
	}
	return records, nil
}

// Shuffle permutes records in place. The same seed always gives the same order.
func Shuffle(records []Record, seed uint64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// Split returns the first int(len*ratio) records as the training partition
// and the rest as the test partition. Both share the backing array.
func Split(records []Record, ratio float64) (train, test []Record) {
	n := int(float64(len(records)) * ratio)
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n], records[n:]
}
