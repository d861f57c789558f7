package pageobject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func calculatorDef() *Definition {
	return &Definition{
		Children: map[string]*Definition{
			"one": {Scope: ".numbers button:nth-of-type(1)"},
			"screen": {
				Scope: ".screen",
				Children: map[string]*Definition{
					"result": {Scope: "input"},
				},
			},
		},
	}
}

// calculatorExec scripts a calculator display: clicking a digit button
// appends that digit to the screen input.
func calculatorExec() *fakeExec {
	fake := newFakeExec()
	screen := &fakeElement{visible: true}
	fake.dom[".screen input"] = []*fakeElement{screen}
	fake.dom[".numbers button:nth-of-type(1)"] = []*fakeElement{{text: "1", visible: true}}
	fake.clickableTexts[""] = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "="}

	fake.onClickText = func(scope, text string) {
		if text != "=" {
			screen.text += text
		}
	}
	fake.onClick = func(selector string) {
		if selector == ".numbers button:nth-of-type(1)" {
			screen.text += "1"
		}
	}
	return fake
}

func TestChainEnqueuesBeforeAnythingSettles(t *testing.T) {
	fake := calculatorExec()
	page := buildTree(t, calculatorDef())
	page.SetContext(fake)

	p := page.ClickOn("9").Child("one").Click()
	require.NoError(t, p.Err())
	require.Len(t, fake.queue, 2, "both actions enqueued before either settles")
	require.Equal(t, 0, fake.settles)

	require.NoError(t, p.Then(context.Background()))

	result := page.Child("screen").Child("result")
	text, err := result.Text()
	require.NoError(t, err)
	require.Equal(t, "91", text)

	ok, err := result.Contains("91")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = result.Contains("99")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestChainRunsInCallOrder(t *testing.T) {
	fake := calculatorExec()
	page := buildTree(t, calculatorDef())
	page.SetContext(fake)

	require.NoError(t, page.ClickOn("1").ClickOn("2").ClickOn("3").Then(context.Background()))

	text, err := page.Child("screen").Child("result").Text()
	require.NoError(t, err)
	require.Equal(t, "123", text)
}

func TestIndependentHandlesShareTheQueue(t *testing.T) {
	fake := calculatorExec()
	page := buildTree(t, calculatorDef())
	page.SetContext(fake)

	first := page.ClickOn("4")
	second := page.ClickOn("5")
	require.NoError(t, first.Err())
	require.NoError(t, second.Err())
	require.Len(t, fake.queue, 2)

	require.NoError(t, page.Then(context.Background()))

	text, err := page.Child("screen").Child("result").Text()
	require.NoError(t, err)
	require.Equal(t, "45", text)
}

func TestChainErrorSticksAndShortCircuits(t *testing.T) {
	fake := calculatorExec()
	page := buildTree(t, calculatorDef())
	page.SetContext(fake)

	p := page.Child("screen").Child("result").Click().Child("nope").Click()
	require.Error(t, p.Err())
	require.Len(t, fake.queue, 1, "only the action before the bad navigation is enqueued")
	require.ErrorIs(t, p.Then(context.Background()), p.Err())
}

func TestPendingNavigationKeepsTreeValid(t *testing.T) {
	fake := calculatorExec()
	page := buildTree(t, calculatorDef())
	page.SetContext(fake)

	p := page.ClickOn("9").Child("screen").Child("result")
	require.NoError(t, p.Err())
	require.Equal(t, ".screen input", p.Node().Query().Selector)
}
