package model

// Token is one word of a parsed sentence as delivered by the upstream
// parser: surface form, lemma, coarse part-of-speech and dependency role,
// plus the character span in the original sentence text.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`            // NOUN, PROPN, VERB, AUX, ADJ, ADV, DET, PRON, ADP, NUM, CCONJ, SCONJ, PART, PUNCT
	Dep   string `json:"dep,omitempty"`  // nsubj, nsubjpass, root, obj, det, amod, compound, advmod, ...
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Common part-of-speech and dependency role labels used by the extractor.
const (
	POSNoun       = "NOUN"
	POSProperNoun = "PROPN"
	POSVerb       = "VERB"
	POSAux        = "AUX"
	POSAdjective  = "ADJ"
	POSAdverb     = "ADV"
	POSDeterminer = "DET"
	POSPronoun    = "PRON"
	POSAdposition = "ADP"
	POSNumber     = "NUM"
	POSParticle   = "PART"
	POSPunct      = "PUNCT"

	DepSubject        = "nsubj"
	DepPassiveSubject = "nsubjpass"
	DepRoot           = "root"
	DepObject         = "obj"
	DepDeterminer     = "det"
)

// Span is a contiguous run of tokens identified as a subject or phenomenon.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"` // token index, inclusive
	End   int    `json:"end"`   // token index, exclusive
}

// Sentence is one linguistic sentence of a Document. Tokens come from the
// adapter; everything else is derived by pipeline stages. Ordinal position
// is assigned once and never changes, since downstream timelines depend on
// document order.
type Sentence struct {
	Ordinal int     `json:"ordinal"`
	Text    string  `json:"sentence"`
	Tokens  []Token `json:"-"`

	Subjects  []Span     `json:"subjects,omitempty"`
	Phenomena []Span     `json:"phenomena,omitempty"`
	Primes    []string   `json:"primes,omitempty"`
	Vectors   VectorPair `json:"vectors"`

	// Degenerate marks a sentence whose parsed structure was unusable.
	// Such sentences carry empty annotations and a zero vector; they are
	// a valid result, not an error.
	Degenerate bool   `json:"degenerate,omitempty"`
	ParseError string `json:"parse_error,omitempty"`
}

// Document is the full input for one analysis run. Immutable once built;
// stages mutate only the derived fields of its Sentences.
type Document struct {
	Text      string     `json:"-"`
	Lang      string     `json:"lang"`
	Sentences []Sentence `json:"sentences"`
}

// ValidSentences counts sentences that survived adaptation.
func (d *Document) ValidSentences() int {
	n := 0
	for i := range d.Sentences {
		if !d.Sentences[i].Degenerate {
			n++
		}
	}
	return n
}
