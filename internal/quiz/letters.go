package quiz

// Option lettering is always positional: A is the first option, B the
// second, and so on. No randomization is ever applied.

// OptionLetter returns the choice letter for a 0-based option index.
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// LetterIndex returns the 0-based option index for a choice letter, or
// -1 if the letter is not a single character in [A, A+n).
func LetterIndex(letter string, n int) int {
	if len(letter) != 1 {
		return -1
	}
	idx := int(letter[0] - 'A')
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}
