package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Criterion is one boolean signal evaluated against lower-cased text.
type Criterion struct {
	Name   string
	Weight int // zero means 1
	Match  func(text string) bool
}

func (c Criterion) weight() int {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

// Keywords matches when any of terms occurs as a substring.
func Keywords(name string, terms ...string) Criterion {
	return Criterion{
		Name: name,
		Match: func(text string) bool {
			for _, t := range terms {
				if strings.Contains(text, t) {
					return true
				}
			}
			return false
		},
	}
}

// Pattern matches when re finds anything in the text.
func Pattern(name string, re *regexp.Regexp) Criterion {
	return Criterion{Name: name, Match: re.MatchString}
}

// MinAmount matches when some monetary token reaches threshold.
func MinAmount(name string, threshold float64) Criterion {
	return Criterion{
		Name:  name,
		Match: func(text string) bool { return HasAmountAtLeast(text, threshold) },
	}
}

var numberWords = map[int]string{
	1: "um", 2: "dois", 3: "três", 4: "quatro", 5: "cinco",
	6: "seis", 7: "sete", 8: "oito", 9: "nove", 10: "dez",
	12: "doze", 15: "quinze", 20: "vinte",
}

func numberAlternatives(n int) string {
	alts := regexp.QuoteMeta(strconv.Itoa(n))
	if w, ok := numberWords[n]; ok {
		alts += "|" + w
	}
	return alts
}

// Go's \b only knows ASCII word characters, so "5ª" or "até5" would count
// as a standalone 5. These boundaries treat every letter and digit as a word
// character.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// QuantityPattern matches a minimum-quantity phrase such as "5", "cinco",
// "pelo menos 5" or "mínimo de 5".
func QuantityPattern(n int) *regexp.Regexp {
	num := strconv.Itoa(n)
	return regexp.MustCompile(fmt.Sprintf(`(?i)%s(%s|pelo menos %s|mínimo de %s)%s`,
		wordStart, numberAlternatives(n), num, num, wordEnd))
}

// TimeWindowPattern matches a time-window phrase such as "últimos 5 anos".
func TimeWindowPattern(years int) *regexp.Regexp {
	num := strconv.Itoa(years)
	pattern := fmt.Sprintf(`(?i)(últimos?\s*%[1]s\s*anos?|%[1]s\s*anos?`, num)
	if w, ok := numberWords[years]; ok {
		pattern += fmt.Sprintf(`|%s\s*anos?`, w)
	}
	return regexp.MustCompile(pattern + ")")
}
