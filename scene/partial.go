package scene

import (
	"strings"
)

// Recover extracts the fully-formed prefix of a truncated element array.
//
// If the text does not yet begin an array there is nothing usable. A clean
// parse is returned verbatim. Otherwise the text is cut immediately after
// the last closing brace and re-terminated with "]", which recovers every
// complete top-level element while discarding the one still arriving. If
// even that fails (the last "}" closed a nested object of the in-flight
// element), nothing is recovered; the next chunk will.
func Recover(raw string) []*Element {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil
	}
	if els, err := ParseElements(trimmed); err == nil {
		return els
	}
	idx := strings.LastIndex(trimmed, "}")
	if idx < 0 {
		return nil
	}
	els, err := ParseElements(trimmed[:idx+1] + "]")
	if err != nil {
		return nil
	}
	return els
}

// RecoverStreaming recovers a partial frame and additionally drops the last
// completed element: at the moment an element closes, its final fields are
// often not visible yet, so holding it back one step avoids pop-in of wrong
// geometry. Scenes with fewer than two elements are kept whole. Final
// payloads must use ParseElements instead; this rule is for intermediate
// frames only.
func RecoverStreaming(raw string) []*Element {
	els := Recover(raw)
	if len(els) < 2 {
		return els
	}
	return els[:len(els)-1]
}
