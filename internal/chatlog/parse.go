package chatlog

import "regexp"

// The moderation front end embeds its findings in the processed text as
// Korean-labelled markers. These patterns extract them.
var (
	harmfulWordsRe      = regexp.MustCompile(`문장 중 유해한 단어들: \[(.*?)]`)
	replacementFormatRe = regexp.MustCompile(`대체 제안 형식: '(.*?)'`)
	replacementTextRe   = regexp.MustCompile(`대체 문장: '(.*?)'`)
)

// ParsedText is the structured part of a processed chat text. Fields stay
// empty when their marker is absent.
type ParsedText struct {
	HarmfulWords      string
	ReplacementFormat string
	ReplacementText   string
}

// ParseProcessedText extracts the marker fields from a processed text.
func ParseProcessedText(processed string) ParsedText {
	var p ParsedText
	if m := harmfulWordsRe.FindStringSubmatch(processed); m != nil {
		p.HarmfulWords = m[1]
	}
	if m := replacementFormatRe.FindStringSubmatch(processed); m != nil {
		p.ReplacementFormat = m[1]
	}
	if m := replacementTextRe.FindStringSubmatch(processed); m != nil {
		p.ReplacementText = m[1]
	}
	return p
}
