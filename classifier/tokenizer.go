package classifier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidInput is returned when a value can't be turned into text.
var ErrInvalidInput = errors.New("classifier: input can not be converted to text")

// Punctuation is the ASCII punctuation set removed by PunctuationTokenizer.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenizer is the interface for a text tokenizer
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

type punctuationTokenizer struct{}

// PunctuationTokenizer lowercases text, deletes ASCII punctuation without
// inserting a separator ("don't" becomes "dont") and splits on runs of
// whitespace. Duplicates and order are kept.
var PunctuationTokenizer = punctuationTokenizer{}

func (t punctuationTokenizer) Tokenize(text string) ([]string, error) {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.Fields(text), nil
}

// TokenizeValue stringifies v and tokenizes it with PunctuationTokenizer.
// A nil value or a NaN float reads as "nan".
func TokenizeValue(v interface{}) ([]string, error) {
	text, err := stringify(v)
	if err != nil {
		return nil, err
	}
	return PunctuationTokenizer.Tokenize(text)
}

func stringify(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "nan", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case fmt.Stringer:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case float64:
		return formatFloat(x, 64), nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unsupported type %T", v)
}

func formatFloat(f float64, bitSize int) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
