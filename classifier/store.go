package classifier

// ErrCategoryDoesNotExist is the error returned when a category doesn't exist.
type ErrCategoryDoesNotExist string

func (e ErrCategoryDoesNotExist) Error() string {
	return "classifier: category " + string(e) + " does not exist"
}

// Store is the storage interface for a classifier. Token lookups have
// default-zero semantics: a token never added to a category counts as 0.
type Store interface {
	Reset() error
	Categories() (map[string]int64, error) // category -> document count
	AddCategory(name string) error
	AddDocument(category string, tokens []string) error
	TokenCounts(categories, tokens []string) (map[string]map[string]int64, error) // category -> token -> count
	WordTotals() (map[string]int64, error)                                       // category -> token occurrences
	VocabularySize() (int64, error)
}

type localStore struct {
	categories     []string
	documentCounts map[string]int64            // category -> count
	tokenCounts    map[string]map[string]int64 // category -> token -> count
	wordTotals     map[string]int64            // category -> count
}

// NewLocalStore returns a new in-memory store
func NewLocalStore() Store {
	ls := &localStore{}
	ls.Reset()
	return ls
}

func (ls *localStore) Reset() error {
	ls.categories = make([]string, 0)
	ls.documentCounts = make(map[string]int64)
	ls.tokenCounts = make(map[string]map[string]int64)
	ls.wordTotals = make(map[string]int64)
	return nil
}

func (ls *localStore) Categories() (map[string]int64, error) {
	cats := make(map[string]int64, len(ls.documentCounts))
	for name, n := range ls.documentCounts {
		cats[name] = n
	}
	return cats, nil
}

func (ls *localStore) AddCategory(name string) error {
	if _, ok := ls.documentCounts[name]; ok {
		return nil
	}
	ls.categories = append(ls.categories, name)
	ls.documentCounts[name] = 0
	ls.tokenCounts[name] = make(map[string]int64)
	ls.wordTotals[name] = 0
	return nil
}

func (ls *localStore) AddDocument(category string, tokens []string) error {
	fc, ok := ls.tokenCounts[category]
	if !ok {
		return ErrCategoryDoesNotExist(category)
	}
	ls.documentCounts[category]++
	for _, token := range tokens {
		fc[token]++
	}
	ls.wordTotals[category] += int64(len(tokens))
	return nil
}

func (ls *localStore) TokenCounts(categories, tokens []string) (map[string]map[string]int64, error) {
	if categories == nil {
		categories = ls.categories
	}
	counts := make(map[string]map[string]int64, len(categories))
	for _, cat := range categories {
		tc, ok := ls.tokenCounts[cat]
		if !ok {
			return nil, ErrCategoryDoesNotExist(cat)
		}
		counts2 := make(map[string]int64, len(tokens))
		for _, t := range tokens {
			counts2[t] = tc[t]
		}
		counts[cat] = counts2
	}
	return counts, nil
}

func (ls *localStore) WordTotals() (map[string]int64, error) {
	totals := make(map[string]int64, len(ls.wordTotals))
	for name, n := range ls.wordTotals {
		totals[name] = n
	}
	return totals, nil
}

func (ls *localStore) VocabularySize() (int64, error) {
	seen := make(map[string]struct{})
	for _, tc := range ls.tokenCounts {
		for t, n := range tc {
			if n > 0 {
				seen[t] = struct{}{}
			}
		}
	}
	return int64(len(seen)), nil
}
