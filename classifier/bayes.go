package classifier

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidTraining is returned by Fit for an empty training set or
	// when messages and labels differ in length.
	ErrInvalidTraining = errors.New("classifier: invalid training set")
	// ErrNotTrained is returned when scoring before Fit has completed.
	ErrNotTrained = errors.New("classifier: not trained")
)

// BayesianClassifier is a multinomial naive Bayes classifier over two
// classes with add-one smoothing on token counts.
type BayesianClassifier struct {
	store     Store
	tokenizer Tokenizer

	// PriorSmoothing is added to each class's message count when computing
	// priors. Zero keeps plain label frequencies, in which case a class
	// missing from the training set can never be predicted.
	PriorSmoothing float64

	trained    bool
	priors     [len(Labels)]float64
	wordTotals [len(Labels)]int64
	vocabSize  int64
}

// NewBayesianClassifier returns a new, untrained BayesianClassifier
func NewBayesianClassifier(store Store, tokenizer Tokenizer) (*BayesianClassifier, error) {
	if store == nil {
		return nil, errors.New("classifier: nil store")
	}
	if tokenizer == nil {
		tokenizer = PunctuationTokenizer
	}
	return &BayesianClassifier{
		store:     store,
		tokenizer: tokenizer,
	}, nil
}

// Fit trains the classifier on tokenized messages and their labels. Calling
// Fit again discards everything learned before.
func (bc *BayesianClassifier) Fit(messages [][]string, labels []Label) error {
	if len(messages) != len(labels) {
		return errors.Wrapf(ErrInvalidTraining, "%d messages but %d labels", len(messages), len(labels))
	}
	if len(messages) == 0 {
		return errors.Wrap(ErrInvalidTraining, "no messages")
	}
	var classCounts [len(Labels)]int
	for i, l := range labels {
		if l != Ham && l != Spam {
			return errors.Wrapf(ErrInvalidTraining, "message %d has label %v", i, l)
		}
		classCounts[l]++
	}

	bc.trained = false
	if err := bc.store.Reset(); err != nil {
		return errors.Wrap(err, "classifier: reset store")
	}
	for _, l := range Labels {
		if err := bc.store.AddCategory(l.String()); err != nil {
			return err
		}
	}
	for i, tokens := range messages {
		if err := bc.store.AddDocument(labels[i].String(), tokens); err != nil {
			return errors.Wrapf(err, "classifier: add message %d", i)
		}
	}

	totals, err := bc.store.WordTotals()
	if err != nil {
		return err
	}
	vocab, err := bc.store.VocabularySize()
	if err != nil {
		return err
	}

	a := bc.PriorSmoothing
	bc.priors[Spam] = (float64(classCounts[Spam]) + a) / (float64(len(labels)) + 2*a)
	bc.priors[Ham] = 1 - bc.priors[Spam]
	for _, l := range Labels {
		bc.wordTotals[l] = totals[l.String()]
	}
	bc.vocabSize = vocab
	bc.trained = true
	return nil
}

// Scores returns the log-likelihood of tokens under each class: the log
// prior plus ln P(token|class) for every token, duplicates included.
func (bc *BayesianClassifier) Scores(tokens []string) (spam, ham float64, err error) {
	if !bc.trained {
		return 0, 0, ErrNotTrained
	}
	spam = math.Log(bc.priors[Spam])
	ham = math.Log(bc.priors[Ham])
	// Nothing was learned about tokens; every class would get the same term.
	if bc.vocabSize == 0 || len(tokens) == 0 {
		return spam, ham, nil
	}

	counts, err := bc.store.TokenCounts([]string{Ham.String(), Spam.String()}, tokens)
	if err != nil {
		return 0, 0, err
	}
	spamCounts := counts[Spam.String()]
	hamCounts := counts[Ham.String()]
	spamDenom := float64(bc.wordTotals[Spam] + bc.vocabSize)
	hamDenom := float64(bc.wordTotals[Ham] + bc.vocabSize)
	for _, t := range tokens {
		spam += math.Log(float64(spamCounts[t]+1) / spamDenom)
		ham += math.Log(float64(hamCounts[t]+1) / hamDenom)
	}
	return spam, ham, nil
}

// Predict returns Spam when the spam score is strictly greater than the ham
// score, Ham otherwise.
func (bc *BayesianClassifier) Predict(tokens []string) (Label, error) {
	spam, ham, err := bc.Scores(tokens)
	if err != nil {
		return Ham, err
	}
	if spam > ham {
		return Spam, nil
	}
	return Ham, nil
}

// Classify tokenizes text with the classifier's tokenizer and predicts its label.
func (bc *BayesianClassifier) Classify(text string) (Label, error) {
	tokens, err := bc.tokenizer.Tokenize(text)
	if err != nil {
		return Ham, err
	}
	return bc.Predict(tokens)
}

// Trained reports whether Fit has completed.
func (bc *BayesianClassifier) Trained() bool {
	return bc.trained
}

// Priors returns P(spam) and P(ham) as of the last Fit.
func (bc *BayesianClassifier) Priors() (spam, ham float64) {
	return bc.priors[Spam], bc.priors[Ham]
}

// WordTotals returns the number of token occurrences seen per class.
func (bc *BayesianClassifier) WordTotals() (spam, ham int64) {
	return bc.wordTotals[Spam], bc.wordTotals[Ham]
}

// VocabularySize returns the number of distinct training tokens.
func (bc *BayesianClassifier) VocabularySize() int64 {
	return bc.vocabSize
}
