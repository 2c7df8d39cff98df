package classifier

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Label is the class of a message.
type Label int

const (
	Ham Label = iota
	Spam
)

// Labels lists every class in index order.
var Labels = [...]Label{Ham, Spam}

func (l Label) String() string {
	switch l {
	case Ham:
		return "ham"
	case Spam:
		return "spam"
	}
	return "Label(" + strconv.Itoa(int(l)) + ")"
}

// ParseLabel accepts "ham", "spam" (any case) or the numeric forms "0" and "1".
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ham", "0":
		return Ham, nil
	case "spam", "1":
		return Spam, nil
	}
	return Ham, errors.Errorf("classifier: unknown label %q", s)
}
