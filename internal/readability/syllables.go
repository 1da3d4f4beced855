package readability

import "strings"

const vowels = "aeiouy"

// Syllables estimates the syllable count of a single word by counting vowel
// groups, then dropping a silent trailing e unless the word ends in a
// consonant plus "le" (table, simple). Every non-empty word has at least one.
func Syllables(word string) int {
	word = strings.ToLower(word)
	if len(word) == 0 {
		return 0
	}

	count := 0
	prevWasVowel := false
	for _, char := range word {
		isVowel := strings.ContainsRune(vowels, char)
		if isVowel && !prevWasVowel {
			count++
		}
		prevWasVowel = isVowel
	}

	// Adjust for silent e
	if strings.HasSuffix(word, "e") && count > 1 && !consonantLE(word) {
		count--
	}

	if count == 0 {
		count = 1
	}

	return count
}

// CountSyllables sums Syllables over words
func CountSyllables(words []string) int {
	n := 0
	for _, w := range words {
		n += Syllables(w)
	}
	return n
}

func consonantLE(word string) bool {
	if len(word) < 3 || !strings.HasSuffix(word, "le") {
		return false
	}
	return !strings.ContainsRune(vowels, rune(word[len(word)-3]))
}
