package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pageobject/domain/entities"
)

func TestClueQueriesPriorityOrder(t *testing.T) {
	scope := entities.Query{Selector: ".form"}
	candidates := clueQueries(scope, "email")

	require.Len(t, candidates, 15)

	// attribute priority is test-id, aria-label, placeholder, name, id;
	// input before textarea before select within each
	require.Equal(t, `.form input[data-testid="email"]`, candidates[0].Selector)
	require.Equal(t, `.form textarea[data-testid="email"]`, candidates[1].Selector)
	require.Equal(t, `.form select[data-testid="email"]`, candidates[2].Selector)
	require.Equal(t, `.form input[aria-label="email"]`, candidates[3].Selector)
	require.Equal(t, `.form input[placeholder="email"]`, candidates[6].Selector)
	require.Equal(t, `.form input[name="email"]`, candidates[9].Selector)
	require.Equal(t, `.form input[id="email"]`, candidates[12].Selector)
}

func TestClueQueriesWithoutScope(t *testing.T) {
	candidates := clueQueries(entities.Query{}, "q")
	require.Equal(t, `input[data-testid="q"]`, candidates[0].Selector)
}

func TestClueQueriesCarryContainerAndKey(t *testing.T) {
	scope := entities.Query{Selector: ".form", Container: "#test-root", Key: "signup"}
	for _, c := range clueQueries(scope, "email") {
		require.Equal(t, "#test-root", c.Container)
		require.Equal(t, "signup", c.Key)
		require.Nil(t, c.At, "clue candidates are unindexed")
	}
}

func TestClueQueriesQuoteAwkwardValues(t *testing.T) {
	candidates := clueQueries(entities.Query{}, `search "box"`)
	require.True(t, strings.Contains(candidates[0].Selector, `\"box\"`))

	candidates = clueQueries(entities.Query{}, `back\slash`)
	require.True(t, strings.Contains(candidates[0].Selector, `back\\slash`))
}
