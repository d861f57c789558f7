package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// SeleniumExecution runs page-object operations through a WebDriver
// session. Settle drains the pending queue and then polls the document
// ready state.
type SeleniumExecution struct {
	wd     selenium.WebDriver
	queue  *actionQueue
	logger *logrus.Logger
}

var _ interfaces.Execution = (*SeleniumExecution)(nil)

// NewSeleniumExecution - wraps an existing WebDriver session
func NewSeleniumExecution(wd selenium.WebDriver, logger *logrus.Logger) *SeleniumExecution {
	if logger == nil {
		logger = logrus.New()
	}
	return &SeleniumExecution{
		wd:     wd,
		queue:  &actionQueue{},
		logger: logger,
	}
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary() string {
	if path := os.Getenv("CHROME_BINARY_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// LaunchSelenium - starts chromedriver and a Chrome session, returning
// an execution context plus a cleanup function
func LaunchSelenium(opts LaunchOptions, logger *logrus.Logger) (*SeleniumExecution, func() error, error) {
	if logger == nil {
		logger = logrus.New()
	}

	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, 9515)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if binary := findChromeBinary(); binary != "" {
		logger.Infof("Using Chrome binary at: %s", binary)
		chromeCaps.Path = binary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", 9515))
	if err != nil {
		service.Stop()
		return nil, nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	cleanup := func() error {
		var errs []error
		if err := wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
		if err := service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		return errors.Join(errs...)
	}

	return NewSeleniumExecution(wd, logger), cleanup, nil
}

// Navigate - navigates the session to the specified URL
func (s *SeleniumExecution) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return s.wd.Get(url)
}

// css - full CSS selector for the query, container included
func (s *SeleniumExecution) css(q entities.Query) string {
	sel := q.Selector
	if sel == "" {
		sel = "*"
	}
	if q.Container != "" {
		sel = q.Container + " " + sel
	}
	return sel
}

// matches - every element the query matches, ignoring At
func (s *SeleniumExecution) matches(q entities.Query) ([]selenium.WebElement, error) {
	return s.wd.FindElements(selenium.ByCSSSelector, s.css(q))
}

// one - the single element the query resolves to: the At-indexed
// match, or the first match when no index was given
func (s *SeleniumExecution) one(q entities.Query) (selenium.WebElement, error) {
	els, err := s.matches(q)
	if err != nil {
		return nil, err
	}
	idx := 0
	if q.At != nil {
		idx = *q.At
	}
	if idx >= len(els) {
		return nil, notFound(q)
	}
	return els[idx], nil
}

// Count - number of elements matching the query
func (s *SeleniumExecution) Count(ctx context.Context, q entities.Query) (int, error) {
	els, err := s.matches(q)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// AssertExists - fails with ErrElementNotFound if the query has no match
func (s *SeleniumExecution) AssertExists(ctx context.Context, q entities.Query) error {
	_, err := s.one(q)
	return err
}

// AssertTextExists - fails with ErrElementNotFound if no descendant in
// scope has exactly this visible text
func (s *SeleniumExecution) AssertTextExists(ctx context.Context, q entities.Query, text string) error {
	_, err := s.byText(q, text)
	return err
}

// FindByClue - locates a form-field descendant matching the clue
func (s *SeleniumExecution) FindByClue(ctx context.Context, q entities.Query, clue string) (entities.Query, error) {
	for _, candidate := range clueQueries(q, clue) {
		els, err := s.matches(candidate)
		if err != nil {
			return entities.Query{}, err
		}
		if len(els) > 0 {
			return candidate, nil
		}
	}
	return entities.Query{}, fmt.Errorf("%w: no form field matching clue %q within %s", entities.ErrElementNotFound, clue, q.Describe())
}

// Text - visible text content of the resolved element
func (s *SeleniumExecution) Text(ctx context.Context, q entities.Query) (string, error) {
	el, err := s.one(q)
	if err != nil {
		return "", err
	}

	tag, err := el.TagName()
	if err != nil {
		return "", err
	}
	if tag == "input" || tag == "textarea" || tag == "select" {
		return el.GetAttribute("value")
	}
	return el.Text()
}

// IsVisible - whether the resolved element is displayed
func (s *SeleniumExecution) IsVisible(ctx context.Context, q entities.Query) (bool, error) {
	el, err := s.one(q)
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}

// Click - scrolls the resolved element into view and clicks it
func (s *SeleniumExecution) Click(ctx context.Context, q entities.Query) error {
	s.logger.Infof("Clicking on: %s", q.Describe())

	el, err := s.one(q)
	if err != nil {
		return err
	}
	s.scrollIntoView(el)
	return el.Click()
}

// ClickText - clicks the first descendant with exactly this visible text
func (s *SeleniumExecution) ClickText(ctx context.Context, q entities.Query, text string) error {
	s.logger.Infof("Clicking on text %q within: %s", text, q.Describe())

	el, err := s.byText(q, text)
	if err != nil {
		return err
	}
	s.scrollIntoView(el)
	return el.Click()
}

// Fill - fills the resolved form field; a select element selects the
// option with that value instead
func (s *SeleniumExecution) Fill(ctx context.Context, q entities.Query, value string) error {
	s.logger.Infof("Filling: %s", q.Describe())

	el, err := s.one(q)
	if err != nil {
		return err
	}

	tag, err := el.TagName()
	if err != nil {
		return err
	}
	if tag == "select" {
		return s.selectValue(el, q, value)
	}

	if err := el.Clear(); err != nil {
		s.logger.Warnf("Failed to clear element: %v", err)
	}
	return el.SendKeys(value)
}

// SelectOption - selects the option with the given value
func (s *SeleniumExecution) SelectOption(ctx context.Context, q entities.Query, value string) error {
	el, err := s.one(q)
	if err != nil {
		return err
	}
	return s.selectValue(el, q, value)
}

// Enqueue - appends an operation to the pending-action queue
func (s *SeleniumExecution) Enqueue(op func(ctx context.Context) error) {
	s.queue.push(op)
}

// Settle - drains the pending queue in FIFO order, then waits for the
// document ready state to reach "complete"
func (s *SeleniumExecution) Settle(ctx context.Context) error {
	var errs []error
	if err := s.queue.drain(ctx); err != nil {
		errs = append(errs, err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		state, err := s.wd.ExecuteScript("return document.readyState", nil)
		if err == nil {
			if ready, ok := state.(string); ok && ready == "complete" {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return errors.Join(errs...)
}

// byText - first displayed descendant in scope with exactly this text
func (s *SeleniumExecution) byText(q entities.Query, text string) (selenium.WebElement, error) {
	els, err := s.matches(entities.Query{
		Selector:  joinScope(q.Selector, "*"),
		Container: q.Container,
	})
	if err != nil {
		return nil, err
	}

	for _, el := range els {
		elText, err := el.Text()
		if err != nil || elText != text {
			continue
		}
		if displayed, err := el.IsDisplayed(); err != nil || !displayed {
			continue
		}
		return el, nil
	}
	return nil, fmt.Errorf("%w: text %q within %s", entities.ErrElementNotFound, text, q.Describe())
}

// selectValue - clicks the option with the given value on a select
// element
func (s *SeleniumExecution) selectValue(el selenium.WebElement, q entities.Query, value string) error {
	options, err := el.FindElements(selenium.ByCSSSelector, fmt.Sprintf("option[value=%s]", quoteCSS(value)))
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return fmt.Errorf("%w: option %q within %s", entities.ErrElementNotFound, value, q.Describe())
	}
	return options[0].Click()
}

// scrollIntoView - best-effort scroll before interacting
func (s *SeleniumExecution) scrollIntoView(el selenium.WebElement) {
	script := `arguments[0].scrollIntoView({ behavior: 'instant', block: 'center' });`
	if _, err := s.wd.ExecuteScript(script, []interface{}{el}); err != nil {
		s.logger.Warnf("Failed to scroll to element: %v", err)
	}
}

// joinScope - space-joins selector parts, skipping empty ones
func joinScope(scope, sel string) string {
	if scope == "" {
		return sel
	}
	return scope + " " + sel
}
