package domain

import "unicode/utf8"

// ContentSampleBytes caps how much of a document's content participates
// in tokenization, scoring and snippet extraction. The cap bounds
// worst-case latency regardless of individual document size.
const ContentSampleBytes = 10 * 1024

// SampleContent returns at most ContentSampleBytes bytes of s, cut on a
// rune boundary so the sample is always valid UTF-8.
func SampleContent(s string) string {
	if len(s) <= ContentSampleBytes {
		return s
	}
	cut := ContentSampleBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
