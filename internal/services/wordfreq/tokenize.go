package wordfreq

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into runs of letters and digits
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return word != ""
}

// IsStopword reports whether word is a common filler word
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

var stopwords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am",
	"an", "and", "any", "are", "aren", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cant", "could", "couldn", "did", "didn", "do", "does", "doesn",
	"doing", "don", "dont", "down", "during", "each", "even", "few", "for",
	"from", "further", "get", "got", "had", "hadn", "has", "hasn", "have",
	"haven", "having", "he", "her", "here", "hers", "herself", "him",
	"himself", "his", "how", "i", "if", "im", "in", "into", "is", "isn",
	"it", "its", "itself", "just", "ll", "me", "more", "most", "my",
	"myself", "no", "nor", "not", "now", "of", "off", "oh", "ok", "okay",
	"on", "once", "one", "only", "or", "other", "our", "ours",
	"ourselves", "out", "over", "own", "really", "re", "same", "she",
	"should", "shouldn", "so", "some", "such", "than", "that", "thats",
	"the", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "us", "ve", "very", "was", "wasn", "we", "were",
	"weren", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "won", "would", "wouldn", "yeah", "yes", "you",
	"your", "yours", "yourself", "yourselves",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
