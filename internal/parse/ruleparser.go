package parse

import (
	"context"
	"strings"
	"unicode"

	"github.com/rbaumann/culpa/internal/model"
)

// RuleParser is the built-in shallow parser: sentence splitting, a
// closed-class lexicon with suffix heuristics for part-of-speech, suffix
// lemmatization, and shallow subject/predicate role assignment. It exists
// so the CLI and tests can run without an external NLP service; any real
// deployment can swap in a proper parser behind the Adapter interface.
type RuleParser struct{}

// NewRuleParser creates the default adapter.
func NewRuleParser() *RuleParser {
	return &RuleParser{}
}

// Parse splits text into sentences and assigns token structure.
func (p *RuleParser) Parse(_ context.Context, text string, _ string) ([]model.Sentence, error) {
	raw := splitSentences(text)
	sentences := make([]model.Sentence, 0, len(raw))
	for i, s := range raw {
		tokens := tokenize(s)
		tagTokens(tokens)
		assignRoles(tokens)
		sentences = append(sentences, model.Sentence{
			Ordinal: i,
			Text:    s,
			Tokens:  tokens,
		})
	}
	return sentences, nil
}

// splitSentences splits text on sentence terminators followed by
// whitespace or end of input. Whitespace runs are collapsed first.
func splitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder
	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			atEnd := i+1 >= len(text)
			if atEnd || text[i+1] == ' ' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// tokenize splits a sentence into tokens with character spans, peeling
// leading/trailing punctuation off words. Internal hyphens and digits stay
// attached ("COVID-19" is one token).
func tokenize(sentence string) []model.Token {
	var tokens []model.Token
	i := 0
	for i < len(sentence) {
		if sentence[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(sentence) && sentence[j] != ' ' {
			j++
		}
		word := sentence[i:j]
		start := i

		// Peel punctuation off both ends as separate tokens.
		lead := 0
		for lead < len(word) && isPunct(rune(word[lead])) {
			lead++
		}
		trail := len(word)
		for trail > lead && isPunct(rune(word[trail-1])) && !isWordInternal(word, trail-1) {
			trail--
		}

		for k := 0; k < lead; k++ {
			tokens = append(tokens, punctToken(string(word[k]), start+k))
		}
		if trail > lead {
			core := word[lead:trail]
			tokens = append(tokens, model.Token{
				Text:  core,
				Start: start + lead,
				End:   start + trail,
			})
		}
		for k := trail; k < len(word); k++ {
			tokens = append(tokens, punctToken(string(word[k]), start+k))
		}
		i = j
	}
	return tokens
}

func punctToken(s string, start int) model.Token {
	return model.Token{Text: s, Lemma: s, POS: model.POSPunct, Start: start, End: start + 1}
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) && r != '-' && r != '\''
}

// isWordInternal guards hyphens/apostrophes that belong to the word.
func isWordInternal(word string, idx int) bool {
	r := rune(word[idx])
	return (r == '-' || r == '\'') && idx > 0 && idx < len(word)-1
}

// Closed-class lexicon. Open classes fall through to suffix heuristics.
var (
	determiners = wordSet("the", "a", "an", "this", "that", "these", "those",
		"our", "its", "their", "his", "her", "my", "your", "no", "each", "every", "any", "some")
	pronouns = wordSet("i", "we", "you", "he", "she", "it", "they", "them", "us", "him")
	auxWords = wordSet("is", "are", "was", "were", "be", "been", "being", "am",
		"has", "have", "had", "do", "does", "did",
		"will", "would", "can", "could", "may", "might", "shall", "should", "must")
	prepositions = wordSet("of", "in", "on", "at", "by", "for", "with", "from",
		"to", "into", "about", "over", "under", "between", "during", "despite", "due")
	coordConj = wordSet("and", "or", "but", "nor")
	subordConj = wordSet("because", "if", "when", "while", "although", "since",
		"unless", "until", "before", "after", "where")
	commonVerbs = wordSet("affect", "affected", "affects", "report", "reported", "reports",
		"increase", "increased", "increases", "decrease", "decreased", "decreases",
		"decline", "declined", "declines", "grow", "grew", "grown", "grows",
		"face", "faced", "faces", "expect", "expected", "expects",
		"cause", "caused", "causes", "result", "resulted", "results",
		"impact", "impacted", "impacts", "experience", "experienced",
		"suffer", "suffered", "remain", "remained", "remains",
		"continue", "continued", "continues", "operate", "operated", "operates",
		"disrupt", "disrupted", "disrupts", "announce", "announced", "announces")
	commonAdjectives = wordSet("good", "bad", "strong", "weak", "adverse", "negative",
		"positive", "big", "small", "new", "significant", "material", "severe",
		"uncertain", "volatile", "financial", "economic", "quarterly", "global")
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// tagTokens assigns part-of-speech and lemma in place.
func tagTokens(tokens []model.Token) {
	for i := range tokens {
		t := &tokens[i]
		if t.POS == model.POSPunct {
			continue
		}
		lower := strings.ToLower(t.Text)
		switch {
		case determiners[lower]:
			t.POS = model.POSDeterminer
		case pronouns[lower]:
			t.POS = model.POSPronoun
		case auxWords[lower]:
			t.POS = model.POSAux
		case prepositions[lower]:
			t.POS = model.POSAdposition
		case coordConj[lower]:
			t.POS = "CCONJ"
		case subordConj[lower]:
			t.POS = "SCONJ"
		case lower == "not" || lower == "n't":
			t.POS = model.POSParticle
		case isNumeric(lower):
			t.POS = model.POSNumber
		case strings.HasSuffix(lower, "ly") && len(lower) > 3:
			t.POS = model.POSAdverb
		case commonVerbs[lower]:
			t.POS = model.POSVerb
		case commonAdjectives[lower]:
			t.POS = model.POSAdjective
		case looksProper(t.Text):
			t.POS = model.POSProperNoun
		default:
			t.POS = model.POSNoun
		}
		t.Lemma = lemmatize(lower, t.POS)
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' && r != '%' {
			return false
		}
	}
	return s != ""
}

// looksProper treats capitalized words and digit-bearing acronyms
// ("COVID-19") as proper nouns.
func looksProper(word string) bool {
	r := []rune(word)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return false
	}
	if len(r) == 1 {
		return false
	}
	return true
}

var irregularLemmas = map[string]string{
	"was": "be", "were": "be", "is": "be", "are": "be", "been": "be", "being": "be", "am": "be",
	"has": "have", "had": "have",
	"did": "do", "does": "do",
	"grew": "grow", "grown": "grow",
	"better": "good", "worse": "bad", "worst": "bad",
}

// lemmatize applies a few suffix rules; enough for lexicon matching, not a
// full morphological analyzer.
func lemmatize(lower string, pos string) string {
	if l, ok := irregularLemmas[lower]; ok {
		return l
	}
	switch pos {
	case model.POSAdverb:
		if strings.HasSuffix(lower, "ly") && len(lower) > 4 {
			return strings.TrimSuffix(lower, "ly")
		}
	case model.POSVerb:
		switch {
		case strings.HasSuffix(lower, "ies") && len(lower) > 4:
			return strings.TrimSuffix(lower, "ies") + "y"
		case strings.HasSuffix(lower, "ed") && len(lower) > 4:
			return strings.TrimSuffix(lower, "ed")
		case strings.HasSuffix(lower, "ing") && len(lower) > 5:
			return strings.TrimSuffix(lower, "ing")
		case sibilantPlural(lower):
			return strings.TrimSuffix(lower, "es")
		case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3:
			return strings.TrimSuffix(lower, "s")
		}
	case model.POSNoun:
		switch {
		case strings.HasSuffix(lower, "ies") && len(lower) > 4:
			return strings.TrimSuffix(lower, "ies") + "y"
		case sibilantPlural(lower):
			return strings.TrimSuffix(lower, "es")
		case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3:
			return strings.TrimSuffix(lower, "s")
		}
	}
	return lower
}

// sibilantPlural matches -es forms whose stem ends in a sibilant
// ("reaches", "losses"); elsewhere -es words keep their final e
// ("declines" lemmatizes to "decline", not "declin").
func sibilantPlural(lower string) bool {
	if !strings.HasSuffix(lower, "es") || len(lower) <= 4 {
		return false
	}
	stem := strings.TrimSuffix(lower, "es")
	switch {
	case strings.HasSuffix(stem, "ss"), strings.HasSuffix(stem, "sh"),
		strings.HasSuffix(stem, "ch"), strings.HasSuffix(stem, "x"),
		strings.HasSuffix(stem, "z"):
		return true
	}
	return false
}

// assignRoles performs shallow dependency labeling: the noun run before
// the first verb group is the subject (head noun nsubj, determiner det,
// adjectives amod, other nouns compound), the first main verb is root, and
// nouns after it are objects. Coordinated subject runs split on CCONJ.
func assignRoles(tokens []model.Token) {
	verbIdx := -1
	for i, t := range tokens {
		if t.POS == model.POSVerb || t.POS == model.POSAux {
			verbIdx = i
			break
		}
	}
	if verbIdx < 0 {
		return // no finite verb: nothing to anchor roles on
	}

	// Subject noun run: contiguous DET/ADJ/NOUN/PROPN/NUM/PRON/CCONJ
	// immediately preceding the verb group.
	start := verbIdx
	for start > 0 && isNominal(tokens[start-1].POS) {
		start--
	}
	labelSubjectRun(tokens, start, verbIdx)

	// Verb group: mark the last VERB of the contiguous AUX/VERB/ADV run
	// as root; a pure auxiliary predicate keeps the aux as root.
	rootIdx := verbIdx
	for i := verbIdx; i < len(tokens); i++ {
		switch tokens[i].POS {
		case model.POSVerb:
			rootIdx = i
		case model.POSAux, model.POSAdverb, model.POSParticle:
			continue
		default:
			i = len(tokens)
		}
	}
	tokens[rootIdx].Dep = model.DepRoot

	// Nouns after the root are objects (first NP head) or obliques.
	marked := false
	for i := rootIdx + 1; i < len(tokens); i++ {
		t := &tokens[i]
		if t.POS == model.POSNoun || t.POS == model.POSProperNoun {
			if !marked {
				// Head is the last noun of the contiguous run.
				j := i
				for j+1 < len(tokens) && (tokens[j+1].POS == model.POSNoun || tokens[j+1].POS == model.POSProperNoun) {
					j++
				}
				tokens[j].Dep = model.DepObject
				for k := i; k < j; k++ {
					tokens[k].Dep = "compound"
				}
				marked = true
				i = j
			}
		}
	}
}

func isNominal(pos string) bool {
	switch pos {
	case model.POSDeterminer, model.POSAdjective, model.POSNoun,
		model.POSProperNoun, model.POSNumber, model.POSPronoun, "CCONJ":
		return true
	}
	return false
}

// labelSubjectRun labels one or more coordinated subject NPs in
// tokens[start:end).
func labelSubjectRun(tokens []model.Token, start, end int) {
	npStart := start
	for i := start; i <= end; i++ {
		if i == end || tokens[i].POS == "CCONJ" {
			labelNP(tokens, npStart, i)
			npStart = i + 1
		}
	}
}

// labelNP marks the head of one noun phrase as subject and its modifiers.
func labelNP(tokens []model.Token, start, end int) {
	head := -1
	for i := end - 1; i >= start; i-- {
		switch tokens[i].POS {
		case model.POSNoun, model.POSProperNoun, model.POSPronoun, model.POSDeterminer:
			if head < 0 {
				head = i
			}
		}
		if head >= 0 {
			break
		}
	}
	if head < 0 {
		return
	}
	tokens[head].Dep = model.DepSubject
	for i := start; i < head; i++ {
		switch tokens[i].POS {
		case model.POSDeterminer:
			tokens[i].Dep = model.DepDeterminer
		case model.POSAdjective:
			tokens[i].Dep = "amod"
		case model.POSNoun, model.POSProperNoun, model.POSNumber:
			tokens[i].Dep = "compound"
		}
	}
}
