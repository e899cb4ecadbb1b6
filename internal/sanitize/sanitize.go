// Package sanitize turns raw LLM output into a finished email body with a
// guaranteed closing block. The model is instructed to end the body with a
// stop marker and to leave out any sign-off; when it ignores either rule the
// heuristics here cut the trailing sign-off and contact block before the
// fixed closing is appended.
package sanitize

import "strings"

// StopMarker is the sentinel the model is told to emit at the end of the
// email body. Everything after its first occurrence is discarded.
const StopMarker = "---END-OF-BODY---"

// closingRule pairs a sign-off phrase with how close to the end of the text
// a match must be to count as a closing. Distance bounds keep the cut from
// deleting legitimate body content that merely mentions the phrase.
type closingRule struct {
	phrase      string
	maxDistance int
}

// Evaluated in order; the first rule that matches is applied and the rest
// are skipped.
var closingRules = []closingRule{
	{"Best regards,", 200},
	{"Sincerely,", 200},
	{"Thank you,", 200},
	{"I look forward to hearing from you.", 200},
}

// contactWindow is how far from the end of the text an "@" must appear for
// the trailing paragraph to be suspected of being a contact block.
const contactWindow = 100

// Body strips the model-generated sign-off from raw and returns the cleaned,
// trimmed email body. It applies, in order: the stop-marker cut, the
// closing-phrase rules, and the contact-block heuristic.
func Body(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, StopMarker); idx != -1 {
		text = strings.TrimSpace(text[:idx])
	}

	text = cutClosingPhrase(text)
	text = cutContactBlock(text)
	return text
}

// cutClosingPhrase truncates text before the last occurrence of the first
// closing rule whose match lies within the rule's distance of the end.
// Matching is case-insensitive.
func cutClosingPhrase(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range closingRules {
		idx := strings.LastIndex(lower, strings.ToLower(rule.phrase))
		if idx == -1 {
			continue
		}
		if len(text)-idx < rule.maxDistance {
			return strings.TrimSpace(text[:idx])
		}
	}
	return text
}

// cutContactBlock drops the final paragraph when it looks like a contact
// block: an "@" near the end of the text, and the paragraph after the last
// blank line containing "@" or "+".
func cutContactBlock(text string) string {
	tail := text
	if len(tail) > contactWindow {
		tail = tail[len(tail)-contactWindow:]
	}
	if !strings.Contains(tail, "@") {
		return text
	}

	idx := strings.LastIndex(text, "\n\n")
	if idx == -1 {
		return text
	}
	if strings.ContainsAny(text[idx+2:], "@+") {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

// Finalize sanitizes raw and appends the closing block. The result always
// ends with sig.Render() verbatim, whatever the model produced.
func Finalize(raw string, sig Signature) string {
	return Body(raw) + "\n\n" + sig.Render()
}
