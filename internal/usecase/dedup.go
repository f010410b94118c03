package usecase

// titlePrefixLength is how many leading characters of a title participate in
// the intra-run duplicate check. Stories re-syndicated within one run carry
// near-identical headlines, so a short prefix is enough; the value is part of
// the observable behavior and must not change casually.
const titlePrefixLength = 30

// TitleDeduper suppresses near-duplicate titles within a single run. First
// occurrence wins; state is not shared across runs.
type TitleDeduper struct {
	seen map[string]struct{}
}

// NewTitleDeduper returns an empty per-run set.
func NewTitleDeduper() *TitleDeduper {
	return &TitleDeduper{seen: map[string]struct{}{}}
}

// IsDuplicate reports whether the title's prefix was already accepted in this
// run, registering it on first sight. Title slicing is by code point to match
// the stored behavior for CJK headlines.
func (d *TitleDeduper) IsDuplicate(title string) bool {
	prefix := titlePrefix(title)
	if _, ok := d.seen[prefix]; ok {
		return true
	}
	d.seen[prefix] = struct{}{}
	return false
}

func titlePrefix(title string) string {
	runes := []rune(title)
	if len(runes) > titlePrefixLength {
		runes = runes[:titlePrefixLength]
	}
	return string(runes)
}
