package formatter

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsoncsv/internal/errors"
)

// Case selects how header labels are styled
type Case string

const (
	CaseKeep           Case = "keep"
	CaseSnake          Case = "snake"
	CaseScreamingSnake Case = "screaming_snake"
	CaseKebab          Case = "kebab"
	CaseCamel          Case = "camel"
	CaseLowerCamel     Case = "lower_camel"
)

var caseFuncs = map[Case]func(string) string{
	CaseSnake:          strcase.ToSnake,
	CaseScreamingSnake: strcase.ToScreamingSnake,
	CaseKebab:          strcase.ToKebab,
	CaseCamel:          strcase.ToCamel,
	CaseLowerCamel:     strcase.ToLowerCamel,
}

// ParseCase validates a case name. The empty name means CaseKeep.
func ParseCase(name string) (Case, error) {
	c := Case(strings.ToLower(strings.TrimSpace(name)))
	if c == "" || c == CaseKeep {
		return CaseKeep, nil
	}
	if _, ok := caseFuncs[c]; !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidHeaderCase, name)
	}
	return c, nil
}

// Formatter rewrites header labels. Only labels change: the columns, their
// order and the row values stay as they are.
type Formatter struct {
	headerCase Case
}

// NewFormatter creates a Formatter that leaves labels untouched
func NewFormatter() *Formatter {
	return &Formatter{headerCase: CaseKeep}
}

// NewFormatterWithCase creates a Formatter for the given case
func NewFormatterWithCase(c Case) *Formatter {
	return &Formatter{headerCase: c}
}

// Case returns the configured case
func (f *Formatter) Case() Case {
	return f.headerCase
}

// FormatHeader returns a styled copy of header. Labels stay unique: when
// styling turns a column into a label already in use, the raw key is used
// instead, and failing that the raw key with a numeric suffix.
func (f *Formatter) FormatHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	conv, ok := caseFuncs[f.headerCase]
	for i, name := range header {
		label := name
		if ok {
			// labels made only of separators style to ""
			if styled := conv(name); styled != "" {
				label = styled
			}
		}
		if _, taken := used[label]; taken {
			label = freeLabel(name, used)
		}
		used[label] = struct{}{}
		out[i] = label
	}
	return out
}

func freeLabel(name string, used map[string]struct{}) string {
	if _, taken := used[name]; !taken {
		return name
	}
	for n := 2; ; n++ {
		label := fmt.Sprintf("%s_%d", name, n)
		if _, taken := used[label]; !taken {
			return label
		}
	}
}
