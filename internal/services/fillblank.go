package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	pkgerrors "github.com/pathfinity/pathfinity-backend/internal/pkg/errors"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// FillBlankService converts a complete statement into a fill-in-the-blank
// question. Each extraction strategy is a pure function returning a
// candidate with a confidence score; the highest-confidence non-empty
// candidate wins. The chosen blank is validated by substituting it back
// into the template and comparing against the original statement.
type FillBlankService interface {
	GenerateFillBlank(statement, hint, gradeLevel string) (*types.FillBlankQuestion, error)
	GenerateAnswerVariations(answer string) []string
	GenerateOptions(answer, subject string) []string
}

type fillBlankService struct {
	log  *logger.Logger
	rand *rand.Rand
}

func NewFillBlankService(baseLog *logger.Logger, seed int64) FillBlankService {
	return &fillBlankService{
		log:  baseLog.With("service", "FillBlankService"),
		rand: rand.New(rand.NewSource(seed)),
	}
}

// extraction is one strategy's candidate blank.
type extraction struct {
	answer     string
	confidence float64
	strategy   string
}

type extractor func(statement string) []extraction

// Multi-word domain phrases that should be blanked whole.
var knownPhrases = []string{
	"place value",
	"number line",
	"main idea",
	"water cycle",
	"food chain",
	"solar system",
	"vital signs",
	"lesson plan",
	"flight plan",
	"blue print",
	"point of view",
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "to": true, "of": true, "in": true,
	"on": true, "at": true, "and": true, "or": true, "that": true, "this": true,
	"it": true, "its": true, "with": true, "for": true, "as": true, "by": true,
	"from": true, "we": true, "you": true, "they": true, "he": true, "she": true,
	"can": true, "will": true, "have": true, "has": true, "had": true, "not": true,
	"do": true, "does": true, "when": true, "which": true, "who": true, "what": true,
}

// Ranked sentence-shape patterns; the submatch is the candidate blank.
var blankPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
}{
	{regexp.MustCompile(`(?i)\bis an? ([\w-]+) (?:that|which|who)\b`), 0.85},
	{regexp.MustCompile(`(?i)\bare ([\w-]+) (?:that|which|who)\b`), 0.82},
	{regexp.MustCompile(`(?i)\bcalled (?:a |an |the )?([\w-]+)`), 0.80},
	{regexp.MustCompile(`(?i)\bknown as (?:a |an |the )?([\w-]+)`), 0.78},
	{regexp.MustCompile(`(?i)\bmeans ([\w-]+)`), 0.75},
	{regexp.MustCompile(`(?i)\bequals ([\w.-]+)`), 0.75},
	{regexp.MustCompile(`(?i)\bis (?:a |an |the )?([\w-]+)[.!?]?$`), 0.65},
	{regexp.MustCompile(`(?i)\buses? (?:a |an |the )?([\w-]+)\b`), 0.55},
}

func (s *fillBlankService) GenerateFillBlank(statement, hint, gradeLevel string) (*types.FillBlankQuestion, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return nil, fmt.Errorf("%w: statement required", pkgerrors.ErrInvalidArgument)
	}

	candidates := s.rankCandidates(statement)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no blank candidate found in %q", statement)
	}

	chosen := candidates[0]
	question, ok := buildQuestion(statement, chosen.answer)
	if !ok || !reconstructs(statement, question, chosen.answer) {
		// One corrective re-extraction with the next-best candidate.
		repaired := false
		for _, alt := range candidates[1:] {
			if q, altOK := buildQuestion(statement, alt.answer); altOK && reconstructs(statement, q, alt.answer) {
				chosen = alt
				question = q
				repaired = true
				break
			}
		}
		if !repaired && !ok {
			return nil, fmt.Errorf("could not place a blank in %q", statement)
		}
		if !repaired {
			s.log.Warn("Fill-blank reconstruction mismatch, proceeding best-effort",
				"statement", statement, "answer", chosen.answer)
		}
	}

	return &types.FillBlankQuestion{
		Question:      question,
		CorrectAnswer: chosen.answer,
		Template:      strings.Replace(question, types.BlankMarker, "{blank}", 1),
		Blanks: []types.Blank{{
			Position: strings.Index(question, types.BlankMarker),
			Answer:   chosen.answer,
			Strategy: chosen.strategy,
		}},
		Variants: s.GenerateAnswerVariations(chosen.answer),
		Hint:     hint,
	}, nil
}

// rankCandidates runs every extractor and folds the results into a list
// ordered by descending confidence, deduplicated by answer.
func (s *fillBlankService) rankCandidates(statement string) []extraction {
	extractors := []extractor{
		extractKnownPhrase,
		extractQuoted,
		extractByPattern,
		extractByImportance,
		extractLastSignificant,
	}

	var all []extraction
	seen := map[string]bool{}
	for _, ex := range extractors {
		for _, cand := range ex(statement) {
			key := strings.ToLower(cand.answer)
			if cand.answer == "" || seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, cand)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].confidence > all[j].confidence })
	return all
}

func extractKnownPhrase(statement string) []extraction {
	lower := strings.ToLower(statement)
	var out []extraction
	for _, phrase := range knownPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			out = append(out, extraction{
				answer:     statement[idx : idx+len(phrase)],
				confidence: 0.95,
				strategy:   "phrase",
			})
		}
	}
	return out
}

var quotedRe = regexp.MustCompile(`["']([^"']{2,40})["']`)

func extractQuoted(statement string) []extraction {
	m := quotedRe.FindStringSubmatch(statement)
	if m == nil {
		return nil
	}
	return []extraction{{answer: m[1], confidence: 0.90, strategy: "quoted"}}
}

func extractByPattern(statement string) []extraction {
	var out []extraction
	for _, p := range blankPatterns {
		if m := p.re.FindStringSubmatch(statement); m != nil {
			word := strings.Trim(m[1], ".,!?;:")
			if word == "" || stopWords[strings.ToLower(word)] {
				continue
			}
			out = append(out, extraction{answer: word, confidence: p.confidence, strategy: "pattern"})
		}
	}
	return out
}

// extractByImportance scores words by length and by position relative to
// copula verbs, excluding stop words.
func extractByImportance(statement string) []extraction {
	words := strings.Fields(statement)
	copulaSeen := false
	best := ""
	bestScore := 0.0
	for _, raw := range words {
		word := strings.Trim(raw, ".,!?;:\"'")
		lower := strings.ToLower(word)
		if lower == "is" || lower == "are" || lower == "was" || lower == "were" {
			copulaSeen = true
			continue
		}
		if word == "" || stopWords[lower] {
			continue
		}
		score := float64(len(word))
		if copulaSeen {
			score += 5 // predicate side carries the taught fact
		}
		if score > bestScore {
			bestScore = score
			best = word
		}
	}
	if best == "" {
		return nil
	}
	return []extraction{{answer: best, confidence: 0.40, strategy: "importance"}}
}

func extractLastSignificant(statement string) []extraction {
	words := strings.Fields(statement)
	for i := len(words) - 1; i >= 0; i-- {
		word := strings.Trim(words[i], ".,!?;:\"'")
		if word != "" && !stopWords[strings.ToLower(word)] {
			return []extraction{{answer: word, confidence: 0.10, strategy: "last_word"}}
		}
	}
	return nil
}

// buildQuestion replaces the first occurrence of answer with the blank
// marker, preserving the statement's original casing.
func buildQuestion(statement, answer string) (string, bool) {
	idx := strings.Index(statement, answer)
	if idx < 0 {
		lowerIdx := strings.Index(strings.ToLower(statement), strings.ToLower(answer))
		if lowerIdx < 0 {
			return "", false
		}
		idx = lowerIdx
	}
	return statement[:idx] + types.BlankMarker + statement[idx+len(answer):], true
}

// reconstructs checks the fill-blank law: substituting the answer back into
// the question reproduces the statement after normalization.
func reconstructs(statement, question, answer string) bool {
	rebuilt := strings.Replace(question, types.BlankMarker, answer, 1)
	return normalize(rebuilt) == normalize(statement)
}

var punctRe = regexp.MustCompile(`[^\w\s]`)
var spaceRe = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	s = strings.ToLower(s)
	s = punctRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Small domain synonym table carried over from the original content rules.
var answerSynonyms = map[string][]string{
	"patient": {"client"},
	"chart":   {"record"},
	"doctor":  {"physician"},
	"big":     {"large"},
	"small":   {"little"},
	"start":   {"begin"},
	"teacher": {"instructor"},
	"kid":     {"child"},
}

// GenerateAnswerVariations returns the accepted spellings of an answer:
// the answer itself, plural, possessive, plural possessive, a lowercase
// form, and any domain synonyms.
func (s *fillBlankService) GenerateAnswerVariations(answer string) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}

	variants := []string{answer}
	add := func(v string) {
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(pluralize(answer))
	add(answer + "'s")
	add(pluralize(answer) + "'")
	add(strings.ToLower(answer))
	add(pluralize(strings.ToLower(answer)))

	for _, syn := range answerSynonyms[strings.ToLower(answer)] {
		add(syn)
	}
	return variants
}

func pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

var genericFillers = []string{"sometimes", "always", "different", "another", "second", "special"}

// GenerateOptions builds a four-choice distractor set around the answer.
// Numeric answers get neighbors, words get grammatical near-forms, and
// anything still short is padded with generic fillers. The set is
// Fisher-Yates shuffled.
func (s *fillBlankService) GenerateOptions(answer, subject string) []string {
	answer = strings.TrimSpace(answer)
	options := []string{answer}
	add := func(v string) {
		if v == "" || len(options) >= 4 {
			return
		}
		for _, existing := range options {
			if strings.EqualFold(existing, v) {
				return
			}
		}
		options = append(options, v)
	}

	if n, err := strconv.Atoi(answer); err == nil {
		add(strconv.Itoa(n + 1))
		add(strconv.Itoa(n - 1))
		add(strconv.Itoa(n + 2))
		add(strconv.Itoa(n + 10))
	} else if f, ferr := strconv.ParseFloat(answer, 64); ferr == nil {
		add(strconv.FormatFloat(f+1, 'f', -1, 64))
		add(strconv.FormatFloat(f-1, 'f', -1, 64))
		add(strconv.FormatFloat(f*2, 'f', -1, 64))
	} else {
		add(pluralize(answer))
		add(answer + "'s")
		for _, syn := range answerSynonyms[strings.ToLower(answer)] {
			add(syn)
		}
	}

	for _, filler := range genericFillers {
		add(filler)
	}

	// Fisher-Yates
	for i := len(options) - 1; i > 0; i-- {
		j := s.rand.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}
	return options
}
