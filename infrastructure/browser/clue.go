package browser

import (
	"fmt"
	"strings"

	"pageobject/domain/entities"
)

// clueTags are the form-field elements a clue lookup may target
var clueTags = []string{"input", "textarea", "select"}

// clueAttrs are the identifier attributes a clue is matched against,
// in match priority order
var clueAttrs = []string{"data-testid", "aria-label", "placeholder", "name", "id"}

// clueQueries builds the candidate queries for a clue within a scope,
// in priority order: test-id attribute, aria-label, placeholder, name
// attribute, element id; input before textarea before select within
// each. Backends probe them in order and fill the first that matches.
func clueQueries(scope entities.Query, clue string) []entities.Query {
	candidates := make([]entities.Query, 0, len(clueAttrs)*len(clueTags))
	for _, attr := range clueAttrs {
		for _, tag := range clueTags {
			sel := fmt.Sprintf("%s[%s=%s]", tag, attr, quoteCSS(clue))
			if scope.Selector != "" {
				sel = scope.Selector + " " + sel
			}
			candidates = append(candidates, entities.Query{
				Selector:  sel,
				Container: scope.Container,
				Key:       scope.Key,
			})
		}
	}
	return candidates
}

// quoteCSS - double-quotes a value for use in an attribute selector
func quoteCSS(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
