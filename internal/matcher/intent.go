package matcher

import (
	"slices"
	"strings"
	"unicode"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/model"
)

// IntentParser turns free text into a structured Query.
type IntentParser interface {
	Parse(text string) model.Query
}

// stopWords are dropped before the remaining words become capability
// keywords.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"can": {}, "do": {}, "for": {}, "from": {}, "i": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "me": {}, "my": {}, "need": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"pipeline": {}, "please": {}, "some": {}, "that": {}, "the": {}, "then": {}, "to": {},
	"unit": {}, "units": {}, "want": {}, "we": {}, "which": {}, "with": {},
}

// KeywordParser is a vocabulary-driven IntentParser. Words naming a known
// category or domain become filters, known tags become tag criteria,
// "protected"/"unprotected" set the protection filter, "input:<kind>" and
// "output:<kind>" become port requirements, and everything else becomes a
// capability keyword.
type KeywordParser struct {
	categories map[string]string
	domains    map[string]string
	tags       map[string]struct{}
}

// NewKeywordParser builds a parser from explicit vocabularies.
func NewKeywordParser(categories, domains, tags []string) *KeywordParser {
	p := &KeywordParser{
		categories: make(map[string]string, len(categories)),
		domains:    make(map[string]string, len(domains)),
		tags:       make(map[string]struct{}, len(tags)),
	}
	for _, c := range categories {
		p.categories[strings.ToLower(c)] = c
	}
	for _, d := range domains {
		p.domains[strings.ToLower(d)] = d
	}
	for _, t := range tags {
		p.tags[strings.ToLower(t)] = struct{}{}
	}
	return p
}

// NewKeywordParserFromIndex takes its vocabulary from a catalog snapshot.
func NewKeywordParserFromIndex(idx *catalog.Index) *KeywordParser {
	return NewKeywordParser(idx.Categories(), idx.Domains(), idx.Tags())
}

// Parse implements IntentParser.
func (p *KeywordParser) Parse(text string) model.Query {
	var q model.Query
	for _, tok := range tokenize(text) {
		switch {
		case tok == "protected":
			q.Protected = boolPtr(true)
		case tok == "unprotected":
			q.Protected = boolPtr(false)
		case strings.HasPrefix(tok, "input:") && len(tok) > len("input:"):
			q.Inputs = append(q.Inputs, model.PortRequirement{Kind: strings.TrimPrefix(tok, "input:")})
		case strings.HasPrefix(tok, "output:") && len(tok) > len("output:"):
			q.Outputs = append(q.Outputs, model.PortRequirement{Kind: strings.TrimPrefix(tok, "output:")})
		case p.categories[tok] != "" && q.Category == "":
			q.Category = p.categories[tok]
		case p.domains[tok] != "" && q.Domain == "":
			q.Domain = p.domains[tok]
		case p.isTag(tok):
			if !slices.Contains(q.Tags, tok) {
				q.Tags = append(q.Tags, tok)
			}
		default:
			if _, stop := stopWords[tok]; stop || len(tok) < 2 {
				continue
			}
			if !slices.Contains(q.Capabilities, tok) {
				q.Capabilities = append(q.Capabilities, tok)
			}
		}
	}
	return q
}

func (p *KeywordParser) isTag(tok string) bool {
	_, ok := p.tags[tok]
	return ok
}

// tokenize lower-cases text and splits it on anything that is not a
// letter, digit, underscore, dash or colon.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != ':'
	})
}

func boolPtr(b bool) *bool { return &b }
