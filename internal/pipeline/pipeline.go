package pipeline

import (
	"context"
	"database/sql"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/samuel/go-smsspam/classifier"
	"github.com/samuel/go-smsspam/dataset"
	"github.com/samuel/go-smsspam/internal/config"
	"github.com/samuel/go-smsspam/metrics"
)

// Summary describes one completed run.
type Summary struct {
	Records    int
	Train      int
	Test       int
	Vocabulary int64
	Metrics    metrics.Metrics
}

type example struct {
	record dataset.Record
	tokens []string
}

// Run loads the archive, trains on the training partition, labels every
// message, writes the report to stdout and the results table to cfg.Output.
func Run(ctx context.Context, cfg config.Config, stdout io.Writer) (Summary, error) {
	records, err := dataset.LoadArchive(cfg.Archive)
	if err != nil {
		return Summary{}, err
	}
	log.Info().Str("path", cfg.Archive).Int("records", len(records)).Msg("loaded dataset")
	if len(records) == 0 {
		return Summary{}, errors.Errorf("pipeline: %s has no messages", cfg.Archive)
	}

	dataset.Shuffle(records, cfg.Split.Seed)
	trainSet, testSet := dataset.Split(records, cfg.Split.TrainRatio)
	log.Info().Int("train", len(trainSet)).Int("test", len(testSet)).Uint64("seed", cfg.Split.Seed).Msg("split dataset")

	examples := make([]example, len(records))
	for i, rec := range records {
		tokens, err := classifier.TokenizeValue(rec.Value())
		if err != nil {
			return Summary{}, errors.Wrapf(err, "pipeline: tokenize record %d", i)
		}
		examples[i] = example{record: rec, tokens: tokens}
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	// Split keeps order, so the training partition is a prefix.
	train := examples[:len(trainSet)]

	store, closeStore, err := openStore(cfg.Model)
	if err != nil {
		return Summary{}, err
	}
	defer closeStore()

	bc, err := classifier.NewBayesianClassifier(store, classifier.PunctuationTokenizer)
	if err != nil {
		return Summary{}, err
	}
	bc.PriorSmoothing = cfg.Model.PriorSmoothing

	messages := make([][]string, len(train))
	labels := make([]classifier.Label, len(train))
	for i, ex := range train {
		messages[i] = ex.tokens
		labels[i] = ex.record.Label
	}
	if err := bc.Fit(messages, labels); err != nil {
		return Summary{}, err
	}
	pSpam, pHam := bc.Priors()
	log.Info().Int64("vocab", bc.VocabularySize()).Float64("p_spam", pSpam).Float64("p_ham", pHam).Msg("trained classifier")

	truth := make([]classifier.Label, len(examples))
	predicted := make([]classifier.Label, len(examples))
	results := make([]metrics.Result, len(examples))
	for i, ex := range examples {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return Summary{}, err
			}
		}
		label, err := bc.Predict(ex.tokens)
		if err != nil {
			return Summary{}, errors.Wrapf(err, "pipeline: predict record %d", i)
		}
		truth[i] = ex.record.Label
		predicted[i] = label
		results[i] = metrics.Result{Text: ex.record.Text, Label: ex.record.RawLabel, Predicted: label}
	}

	m, err := metrics.Compute(truth, predicted)
	if err != nil {
		return Summary{}, err
	}
	if err := metrics.WriteReport(stdout, m); err != nil {
		return Summary{}, errors.Wrap(err, "pipeline: write report")
	}
	if err := writeResults(cfg.Output, results); err != nil {
		return Summary{}, err
	}
	log.Info().Str("path", cfg.Output).Int("rows", len(results)).Msg("wrote results")

	return Summary{
		Records:    len(records),
		Train:      len(trainSet),
		Test:       len(testSet),
		Vocabulary: bc.VocabularySize(),
		Metrics:    m,
	}, nil
}

func openStore(cfg config.ModelConfig) (classifier.Store, func(), error) {
	if cfg.Store != config.StoreSQLite {
		return classifier.NewLocalStore(), func() {}, nil
	}
	db, err := sql.Open("sqlite3", cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pipeline: open sqlite")
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)
	store, err := classifier.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Debug().Str("dsn", cfg.SQLiteDSN).Msg("using sqlite store")
	return store, func() { db.Close() }, nil
}

func writeResults(path string, results []metrics.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "pipeline: create results file")
	}
	if err := metrics.WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "pipeline: close results file")
}
