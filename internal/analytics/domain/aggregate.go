package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// AggregateKind tags the variant a QuestionAggregate carries.
type AggregateKind string

const (
	AggregateNumeric AggregateKind = "numeric"
	AggregateChoice  AggregateKind = "choice"
	AggregateText    AggregateKind = "text"
)

// NoAnswer is reported as the most common text answer when a question
// received no usable answers at all.
const NoAnswer = "N/A"

// mostPopularLimit bounds the "most popular" option list of a choice summary.
const mostPopularLimit = 3

// NumericSummary aggregates numeric-typed answers. All fields are zero when
// no answer parsed as a finite number.
type NumericSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
}

// OptionCount is one frequency-table entry of a choice summary.
type OptionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChoiceSummary aggregates single/multi-select answers. Option labels are
// matched case-sensitively against the raw selected value.
type ChoiceSummary struct {
	Counts      map[string]int `json:"counts"`
	Ranked      []OptionCount  `json:"ranked"`
	MostPopular []OptionCount  `json:"mostPopular"`
}

// TextSummary aggregates free-text answers.
type TextSummary struct {
	AverageLength    float64 `json:"averageLength"`
	MostCommonAnswer string  `json:"mostCommonAnswer"`
}

// QuestionAggregate is the per-question result of one aggregation run.
// Exactly one of Numeric/Choice/Text is set, according to Kind.
type QuestionAggregate struct {
	QuestionIndex int             `json:"questionIndex"`
	QuestionText  string          `json:"questionText"`
	QuestionType  QuestionType    `json:"questionType"`
	Kind          AggregateKind   `json:"kind"`
	TotalAnswers  int             `json:"totalAnswers"`
	Numeric       *NumericSummary `json:"numeric,omitempty"`
	Choice        *ChoiceSummary  `json:"choice,omitempty"`
	Text          *TextSummary    `json:"text,omitempty"`
}

// AggregateQuestion computes the type-specific summary for one question over
// the non-missing answer values of every submission. It is a pure function
// and never fails: malformed values degrade to empty/zero results.
func AggregateQuestion(q Question, values []any) QuestionAggregate {
	aggregate := QuestionAggregate{
		QuestionIndex: q.Index,
		QuestionText:  q.Label,
		QuestionType:  q.Type,
		TotalAnswers:  len(values),
	}

	switch {
	case q.Type.Numeric():
		aggregate.Kind = AggregateNumeric
		aggregate.Numeric = summarizeNumeric(values)
	case q.Type.Choice():
		aggregate.Kind = AggregateChoice
		aggregate.Choice = summarizeChoices(values)
	default:
		aggregate.Kind = AggregateText
		aggregate.Text = summarizeText(values)
	}
	return aggregate
}

// summarizeNumeric keeps only values parseable as finite numbers; array
// answers never count as numeric.
func summarizeNumeric(values []any) *NumericSummary {
	numbers := make([]float64, 0, len(values))
	for _, value := range values {
		if number, ok := scalarNumber(value); ok {
			numbers = append(numbers, number)
		}
	}
	if len(numbers) == 0 {
		return &NumericSummary{}
	}

	average, _ := stats.Mean(numbers)
	min, _ := stats.Min(numbers)
	max, _ := stats.Max(numbers)
	return &NumericSummary{
		Average: average,
		Min:     min,
		Max:     max,
		Count:   len(numbers),
	}
}

// summarizeChoices flattens multi-select arrays element-wise, so one answer
// contributes one count per selected option. Ranking is by descending count;
// ties keep first-seen order.
func summarizeChoices(values []any) *ChoiceSummary {
	counts := make(map[string]int)
	order := make([]string, 0, len(values))
	record := func(option string) {
		if _, seen := counts[option]; !seen {
			order = append(order, option)
		}
		counts[option]++
	}

	for _, value := range values {
		if list, ok := value.([]any); ok {
			for _, item := range list {
				record(stringifyScalar(item))
			}
			continue
		}
		record(stringifyScalar(value))
	}

	ranked := make([]OptionCount, 0, len(order))
	for _, option := range order {
		ranked = append(ranked, OptionCount{Label: option, Count: counts[option]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	popular := ranked
	if len(popular) > mostPopularLimit {
		popular = popular[:mostPopularLimit]
	}

	return &ChoiceSummary{Counts: counts, Ranked: ranked, MostPopular: popular}
}

// summarizeText reports the mean rune length of non-empty answers and the
// most frequent answer after case-insensitive, whitespace-trimmed
// normalization. Ties keep first-seen order.
func summarizeText(values []any) *TextSummary {
	counts := make(map[string]int)
	order := make([]string, 0, len(values))
	totalLength := 0
	answered := 0

	for _, value := range values {
		if _, isList := value.([]any); isList {
			continue
		}
		text := stringifyScalar(value)
		if text == "" {
			continue
		}
		totalLength += utf8.RuneCountInString(text)
		answered++

		normalized := strings.ToLower(strings.TrimSpace(text))
		if normalized == "" {
			continue
		}
		if _, seen := counts[normalized]; !seen {
			order = append(order, normalized)
		}
		counts[normalized]++
	}

	summary := &TextSummary{MostCommonAnswer: NoAnswer}
	if answered > 0 {
		summary.AverageLength = float64(totalLength) / float64(answered)
	}
	best := 0
	for _, normalized := range order {
		if counts[normalized] > best {
			best = counts[normalized]
			summary.MostCommonAnswer = normalized
		}
	}
	return summary
}

// scalarNumber reports the float value of a scalar answer, rejecting arrays,
// booleans and anything that does not parse as a finite number.
func scalarNumber(value any) (float64, bool) {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case float32:
		number = float64(v)
	case int:
		number = float64(v)
	case int32:
		number = float64(v)
	case int64:
		number = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

// stringifyScalar renders a scalar answer the way the frontend submitted it,
// keeping exact string values untouched.
func stringifyScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
