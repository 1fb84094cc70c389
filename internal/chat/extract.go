package chat

import "regexp"

// productLocatorPattern matches catalog locators the assistant embeds in
// replies, e.g. "/p/robe-lin-bleu"
var productLocatorPattern = regexp.MustCompile(`/p/([a-zA-Z0-9-]+)`)

const maxSuggestions = 3

// ExtractProductSlugs returns up to maxSuggestions distinct catalog slugs
// referenced in responseText, in order of first appearance. Deterministic
// and side-effect free; used only to surface suggestion chips in the widget.
func ExtractProductSlugs(responseText string) []string {
	matches := productLocatorPattern.FindAllStringSubmatch(responseText, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var slugs []string
	for _, match := range matches {
		slug := match[1]
		if seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
		if len(slugs) == maxSuggestions {
			break
		}
	}

	return slugs
}
