/*
Package textmatch finds whole-word occurrences of stored phrases in a text and
proposes phrases that could complete a text fragment.

A Matcher holds a keyed set of phrases. Every phrase is normalized when it is
added: runs of blanks collapse to one blank, leading and trailing blanks are
dropped and the phrase is lowercased. Each stored phrase carries its own
Boyer-Moore skip tables, built once per add.

# Exact matching

MatchText scans the text right to left against every distinct phrase. Runs of
blanks in the text collapse to the single blank expected by the phrase, so
"summer     fun" matches "summer fun". A match only counts when both of its
ends lie on a token boundary (text edge or blank):

	m := textmatch.New()
	m.AddEntry(101, "summer")
	m.AddEntry(102, "summer fun")
	matches, err := m.MatchText("Summer fun is good")
	// [{Start:0 End:9 Keys:[102]}]

Spans found for several keys are merged, spans contained in another span are
dropped and a span overlapping its left neighbour is dropped. The result is
ordered by start position and its spans are pairwise disjoint.

The scan supports a bounded alphabet (MaxRune, 128 by default). Bad-character
tables only record the runes a phrase contains. A text rune outside the
alphabet that the scan has to look up makes
MatchText fail with an *UnsupportedCharacterError; the stored phrases are left
untouched.

# Partial matching

PartialMatch looks at the right edge of a fragment and reports the phrases
whose beginning it already spells out, with the number of phrase characters
satisfied and the number of fragment characters the completion replaces.
A trailing blank in the fragment means the last word is finished: phrases that
continue mid-word are rejected, and fully typed phrases are dropped unless a
longer candidate exists.

# Concurrency

Matcher is not synchronized. Use SyncMatcher when queries and mutations can
happen on different goroutines.
*/
package textmatch
