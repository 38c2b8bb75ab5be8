package helpers

import (
	"strings"

	"github.com/juju/errors"
)

// FoldErrors squashes a list of errors into one. A single error is returned
// as-is so juju/errors type checks still work on it.
func FoldErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	folded := errs[:0]
	for _, e := range errs {
		if e != nil {
			folded = append(folded, e)
		}
	}
	switch len(folded) {
	case 0:
		return nil
	case 1:
		return folded[0]
	}
	ss := make([]string, 0, len(folded))
	for _, e := range folded {
		ss = append(ss, e.Error())
	}
	return errors.Errorf(strings.Join(ss, "\n"))
}
