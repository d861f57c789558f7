package pageobject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pageobject/domain/entities"
)

func TestTextTrimsAndUsesFirstMatch(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".title"] = []*fakeElement{
		{text: "  Welcome  "},
		{text: "second"},
	}

	root := buildTree(t, &Definition{Scope: ".title", Context: fake})

	text, err := root.Text()
	require.NoError(t, err)
	require.Equal(t, "Welcome", text)
}

func TestTextZeroMatchesWithoutIndexIsEmpty(t *testing.T) {
	fake := newFakeExec()
	root := buildTree(t, &Definition{Scope: ".missing", Context: fake})

	text, err := root.Text()
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestTextIndexMakesReadStrict(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".row"] = []*fakeElement{{text: "only"}}

	root := buildTree(t, &Definition{
		Context: fake,
		Children: map[string]*Definition{
			"second": {Scope: ".row", At: Int(1)},
			"first":  {Scope: ".row", At: Int(0)},
		},
	})

	_, err := root.Child("second").Text()
	require.ErrorIs(t, err, entities.ErrElementNotFound)

	text, err := root.Child("first").Text()
	require.NoError(t, err)
	require.Equal(t, "only", text)
}

func TestIsVisiblePolicies(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".shown"] = []*fakeElement{{text: "x", visible: true}}
	fake.dom[".styled-away"] = []*fakeElement{{text: "x", visible: false}}

	root := buildTree(t, &Definition{
		Context: fake,
		Children: map[string]*Definition{
			"shown":   {Scope: ".shown"},
			"hidden":  {Scope: ".styled-away"},
			"absent":  {Scope: ".absent"},
			"outside": {Scope: ".shown", At: Int(3)},
		},
	})

	visible, err := root.Child("shown").IsVisible()
	require.NoError(t, err)
	require.True(t, visible)

	visible, err = root.Child("hidden").IsVisible()
	require.NoError(t, err)
	require.False(t, visible)

	visible, err = root.Child("absent").IsVisible()
	require.NoError(t, err)
	require.False(t, visible)

	visible, err = root.Child("outside").IsVisible()
	require.NoError(t, err)
	require.False(t, visible)
}

func TestIsHiddenPolicies(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".shown"] = []*fakeElement{{text: "x", visible: true}}
	fake.dom[".styled-away"] = []*fakeElement{{text: "x", visible: false}}

	root := buildTree(t, &Definition{
		Context: fake,
		Children: map[string]*Definition{
			"shown":   {Scope: ".shown"},
			"hidden":  {Scope: ".styled-away"},
			"absent":  {Scope: ".absent"},
			"outside": {Scope: ".shown", At: Int(3)},
		},
	})

	hidden, err := root.Child("shown").IsHidden()
	require.NoError(t, err)
	require.False(t, hidden)

	hidden, err = root.Child("hidden").IsHidden()
	require.NoError(t, err)
	require.True(t, hidden)

	// nothing matching means nothing is "present and hidden"
	hidden, err = root.Child("absent").IsHidden()
	require.NoError(t, err)
	require.False(t, hidden)

	// an index that resolves to no visible element counts as hidden
	hidden, err = root.Child("outside").IsHidden()
	require.NoError(t, err)
	require.True(t, hidden)
}

func TestContainsIsCaseSensitive(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".msg"] = []*fakeElement{{text: "Payment accepted"}}

	root := buildTree(t, &Definition{Scope: ".msg", Context: fake})

	ok, err := root.Contains("accepted")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = root.Contains("Accepted")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClickAssertsExistenceAtEnqueueTime(t *testing.T) {
	fake := newFakeExec()
	root := buildTree(t, &Definition{Scope: ".gone", Context: fake})

	p := root.Click()
	require.ErrorIs(t, p.Err(), entities.ErrElementNotFound)
	require.Empty(t, fake.queue, "a failed assertion must not enqueue the action")
}

func TestClickEnqueuesAndRunsOnSettle(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".btn"] = []*fakeElement{{text: "go", visible: true}}

	var clicked []string
	fake.onClick = func(selector string) { clicked = append(clicked, selector) }

	root := buildTree(t, &Definition{Scope: ".btn", Context: fake})

	p := root.Click()
	require.NoError(t, p.Err())
	require.Len(t, fake.queue, 1)
	require.Empty(t, clicked, "the click must not run before settle")

	require.NoError(t, p.Then(context.Background()))
	require.Equal(t, []string{".btn"}, clicked)
}

func TestClickOnAssertsTextAtEnqueueTime(t *testing.T) {
	fake := newFakeExec()
	fake.clickableTexts[".keys"] = []string{"1", "2"}

	root := buildTree(t, &Definition{Scope: ".keys", Context: fake})

	p := root.ClickOn("9")
	require.ErrorIs(t, p.Err(), entities.ErrElementNotFound)
	require.Empty(t, fake.queue)

	p = root.ClickOn("2")
	require.NoError(t, p.Err())
	require.Len(t, fake.queue, 1)
}

func TestFillInOneArgumentTargetsResolvedSelector(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".form input.name"] = []*fakeElement{{visible: true}}

	root := buildTree(t, &Definition{
		Scope:   ".form",
		Context: fake,
		Children: map[string]*Definition{
			"name": {Scope: "input.name"},
		},
	})

	p := root.Child("name").FillIn("Alice")
	require.NoError(t, p.Err())
	require.NoError(t, p.Then(context.Background()))
	require.Equal(t, "Alice", fake.dom[".form input.name"][0].text)
}

func TestFillInTwoArgumentsOnlyTargetsClueDescendant(t *testing.T) {
	fake := newFakeExec()
	// the resolved element itself would match, but must never be filled
	fake.dom[".form"] = []*fakeElement{{visible: true}}
	fake.dom[`input[name="email"]`] = []*fakeElement{{visible: true}}
	fake.clueFields[".form|email"] = `input[name="email"]`

	root := buildTree(t, &Definition{Scope: ".form", Context: fake})

	p := root.FillIn("email", "a@b.test")
	require.NoError(t, p.Err())
	require.NoError(t, p.Then(context.Background()))

	require.Equal(t, "a@b.test", fake.dom[`input[name="email"]`][0].text)
	require.Equal(t, "", fake.dom[".form"][0].text)
}

func TestFillInUnknownClueFailsAtEnqueueTime(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".form"] = []*fakeElement{{visible: true}}

	root := buildTree(t, &Definition{Scope: ".form", Context: fake})

	p := root.FillIn("nope", "value")
	require.ErrorIs(t, p.Err(), entities.ErrElementNotFound)
	require.Empty(t, fake.queue)
}

func TestFillInArgumentShapes(t *testing.T) {
	fake := newFakeExec()
	root := buildTree(t, &Definition{Scope: ".form", Context: fake})

	_, err := root.Call("fillIn")
	require.Error(t, err)

	_, err = root.Call("fillIn", "a", "b", "c")
	require.Error(t, err)
}

func TestSelectChoosesOption(t *testing.T) {
	fake := newFakeExec()
	fake.dom[".form select.country"] = []*fakeElement{{visible: true}}

	root := buildTree(t, &Definition{
		Scope:   ".form",
		Context: fake,
		Children: map[string]*Definition{
			"country": {Scope: "select.country"},
		},
	})

	p := root.Child("country").Select("NL")
	require.NoError(t, p.Err())
	require.NoError(t, p.Then(context.Background()))
	require.Equal(t, "NL", fake.dom[".form select.country"][0].text)
}
