package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// PlaywrightExecution runs page-object operations against a Playwright
// page. It owns the pending-action queue; Settle drains the queue and
// then waits for the network to go idle.
type PlaywrightExecution struct {
	page   playwright.Page
	queue  *actionQueue
	logger *logrus.Logger
}

var _ interfaces.Execution = (*PlaywrightExecution)(nil)
var _ interfaces.Inspector = (*PlaywrightExecution)(nil)

// NewPlaywrightExecution - wraps an existing Playwright page
func NewPlaywrightExecution(page playwright.Page, logger *logrus.Logger) *PlaywrightExecution {
	if logger == nil {
		logger = logrus.New()
	}
	return &PlaywrightExecution{
		page:   page,
		queue:  &actionQueue{},
		logger: logger,
	}
}

// LaunchOptions configures LaunchPlaywright
type LaunchOptions struct {
	Headless bool
}

// LaunchPlaywright - starts Chromium and returns an execution context
// plus a cleanup function closing the whole stack
func LaunchPlaywright(opts LaunchOptions, logger *logrus.Logger) (*PlaywrightExecution, func() error, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}

	cleanup := func() error {
		var errs []error
		if err := browserCtx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		if err := browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		if err := pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		return errors.Join(errs...)
	}

	return NewPlaywrightExecution(page, logger), cleanup, nil
}

// Page returns the underlying Playwright page.
func (p *PlaywrightExecution) Page() playwright.Page {
	return p.page
}

// Navigate - navigates to the specified URL and waits for network idle
func (p *PlaywrightExecution) Navigate(ctx context.Context, url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	})
	return err
}

// root - locator for every element the query matches, ignoring At
func (p *PlaywrightExecution) root(q entities.Query) playwright.Locator {
	sel := q.Selector
	if sel == "" {
		sel = "*"
	}
	if q.Container != "" {
		return p.page.Locator(q.Container).First().Locator(sel)
	}
	return p.page.Locator(sel)
}

// one - locator for the single element the query resolves to: the
// At-indexed match, or the first match when no index was given
func (p *PlaywrightExecution) one(q entities.Query) playwright.Locator {
	loc := p.root(q)
	if q.At != nil {
		return loc.Nth(*q.At)
	}
	return loc.First()
}

// Count - number of elements matching the query
func (p *PlaywrightExecution) Count(ctx context.Context, q entities.Query) (int, error) {
	return p.root(q).Count()
}

// AssertExists - fails with ErrElementNotFound if the query has no match
func (p *PlaywrightExecution) AssertExists(ctx context.Context, q entities.Query) error {
	cnt, err := p.Count(ctx, q)
	if err != nil {
		return err
	}
	if cnt == 0 || (q.At != nil && *q.At >= cnt) {
		return notFound(q)
	}
	return nil
}

// AssertTextExists - fails with ErrElementNotFound if no descendant in
// scope has exactly this visible text
func (p *PlaywrightExecution) AssertTextExists(ctx context.Context, q entities.Query, text string) error {
	cnt, err := p.byText(q, text).Count()
	if err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("%w: text %q within %s", entities.ErrElementNotFound, text, q.Describe())
	}
	return nil
}

// FindByClue - locates a form-field descendant matching the clue
func (p *PlaywrightExecution) FindByClue(ctx context.Context, q entities.Query, clue string) (entities.Query, error) {
	for _, candidate := range clueQueries(q, clue) {
		cnt, err := p.Count(ctx, candidate)
		if err != nil {
			return entities.Query{}, err
		}
		if cnt > 0 {
			return candidate, nil
		}
	}
	return entities.Query{}, fmt.Errorf("%w: no form field matching clue %q within %s", entities.ErrElementNotFound, clue, q.Describe())
}

// Text - visible text content of the resolved element
func (p *PlaywrightExecution) Text(ctx context.Context, q entities.Query) (string, error) {
	loc := p.one(q)

	// form fields report their value, everything else its inner text
	tag, err := p.tagName(loc)
	if err != nil {
		return "", err
	}
	if tag == "input" || tag == "textarea" || tag == "select" {
		return loc.InputValue()
	}
	return loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(5000),
	})
}

// IsVisible - whether the resolved element is visible
func (p *PlaywrightExecution) IsVisible(ctx context.Context, q entities.Query) (bool, error) {
	return p.one(q).IsVisible()
}

// Click - clicks the resolved element once it is visible
func (p *PlaywrightExecution) Click(ctx context.Context, q entities.Query) error {
	p.logger.WithField("selector", q.Describe()).Debug("click")

	loc := p.one(q)
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err != nil {
		return fmt.Errorf("element not found or not visible: %w", err)
	}
	return loc.Click()
}

// ClickText - clicks the first descendant with exactly this visible text
func (p *PlaywrightExecution) ClickText(ctx context.Context, q entities.Query, text string) error {
	p.logger.WithFields(logrus.Fields{
		"selector": q.Describe(),
		"text":     text,
	}).Debug("click by text")

	return p.byText(q, text).First().Click()
}

// Fill - fills the resolved form field; a select element selects the
// option with that value instead
func (p *PlaywrightExecution) Fill(ctx context.Context, q entities.Query, value string) error {
	p.logger.WithField("selector", q.Describe()).Debug("fill")

	loc := p.one(q)
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err != nil {
		return fmt.Errorf("input field not found: %w", err)
	}

	tag, err := p.tagName(loc)
	if err != nil {
		return err
	}
	if tag == "select" {
		_, err := loc.SelectOption(playwright.SelectOptionValues{
			Values: &[]string{value},
		})
		return err
	}

	if err := loc.Clear(); err != nil {
		return err
	}
	return loc.Fill(value)
}

// SelectOption - selects the option with the given value
func (p *PlaywrightExecution) SelectOption(ctx context.Context, q entities.Query, value string) error {
	_, err := p.one(q).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return err
}

// Enqueue - appends an operation to the pending-action queue
func (p *PlaywrightExecution) Enqueue(op func(ctx context.Context) error) {
	p.queue.push(op)
}

// Settle - drains the pending queue in FIFO order, then waits for the
// page to go network-idle
func (p *PlaywrightExecution) Settle(ctx context.Context) error {
	var errs []error
	if err := p.queue.drain(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(5000),
	}); err != nil {
		errs = append(errs, fmt.Errorf("waiting for network idle: %w", err))
	}

	return errors.Join(errs...)
}

// byText - exact visible-text locator within the query's scope
func (p *PlaywrightExecution) byText(q entities.Query, text string) playwright.Locator {
	return p.root(q).GetByText(text, playwright.LocatorGetByTextOptions{
		Exact: playwright.Bool(true),
	})
}

// tagName - lowercase tag name of the located element
func (p *PlaywrightExecution) tagName(loc playwright.Locator) (string, error) {
	result, err := loc.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", err
	}
	tag, _ := result.(string)
	return tag, nil
}

func notFound(q entities.Query) error {
	if q.Key != "" {
		return fmt.Errorf("%w: %s (%s)", entities.ErrElementNotFound, q.Describe(), q.Key)
	}
	return fmt.Errorf("%w: %s", entities.ErrElementNotFound, q.Describe())
}
