package track

import "strings"

// Keyword sets for classifying line-item titles. Matching is a
// case-insensitive substring test; a title may match neither set.
var (
	bootKeywords = []string{"boot", "edea", "risport", "jackson", "graf", "aura"}

	bladeKeywords = []string{"blade", "wilson", "paramount", "eclipse", "gold seal", "coronation ace"}
)

// IsBootLike reports whether a line-item title refers to boots.
func IsBootLike(title string) bool {
	return matchesAny(title, bootKeywords)
}

// IsBladeLike reports whether a line-item title refers to blades.
func IsBladeLike(title string) bool {
	return matchesAny(title, bladeKeywords)
}

func matchesAny(title string, keywords []string) bool {
	lowered := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// InferModels picks a boot model and a blade model from a list of line-item
// titles, for provisioning new status records. When several titles of the
// same type are present the last one wins.
func InferModels(titles []string) (bootModel, bladeModel string) {
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if IsBootLike(title) {
			bootModel = title
		}
		if IsBladeLike(title) {
			bladeModel = title
		}
	}
	return bootModel, bladeModel
}
