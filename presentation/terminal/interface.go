package terminal

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pageobject/application/pageobject"
	"pageobject/domain/interfaces"
	"pageobject/infrastructure/browser"
	"pageobject/infrastructure/definition"
)

// navigator is the optional URL surface both browser backends expose
type navigator interface {
	Navigate(ctx context.Context, url string) error
}

type TerminalInterface struct {
	page     *pageobject.Node
	exec     interfaces.Execution
	cleanup  func() error
	logger   *logrus.Logger
	reader   *bufio.Reader
	defsPath string
}

func NewTerminalInterface() (*TerminalInterface, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	// Setup logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	defsPath := os.Getenv("PAGE_DEFINITION")
	if defsPath == "" {
		defsPath = "page.yaml"
	}

	def, err := definition.Load(defsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load page definition: %w", err)
	}

	page, err := pageobject.Build(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build page object: %w", err)
	}

	opts := browser.LaunchOptions{
		Headless: os.Getenv("HEADLESS") == "true",
	}

	var exec interfaces.Execution
	var cleanup func() error
	switch driver := os.Getenv("BROWSER_DRIVER"); driver {
	case "selenium":
		exec, cleanup, err = browser.LaunchSelenium(opts, logger)
	case "", "playwright":
		exec, cleanup, err = browser.LaunchPlaywright(opts, logger)
	default:
		return nil, fmt.Errorf("unknown BROWSER_DRIVER %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	page.SetContext(exec)

	if url := os.Getenv("START_URL"); url != "" {
		if nav, ok := exec.(navigator); ok {
			if err := nav.Navigate(context.Background(), url); err != nil {
				cleanup()
				return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
			}
		}
	}

	return &TerminalInterface{
		page:     page,
		exec:     exec,
		cleanup:  cleanup,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		defsPath: defsPath,
	}, nil
}

// Close - shuts the browser stack down
func (t *TerminalInterface) Close() error {
	if t.cleanup != nil {
		return t.cleanup()
	}
	return nil
}

func (t *TerminalInterface) Run() error {
	fmt.Println("Page Object Explorer")
	fmt.Println("====================")
	fmt.Println("Commands: text, visible, hidden, contains, click, clickon, fill, select,")
	fmt.Println("          elements, tree, settle, goto, render, quit")
	fmt.Println("Paths are dot-separated child keys, '.' is the root")
	fmt.Println()

	for {
		fmt.Print("> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := t.dispatch(line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (t *TerminalInterface) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "settle":
		return t.page.Then(context.Background())

	case "goto":
		if len(args) != 1 {
			return fmt.Errorf("usage: goto <url>")
		}
		nav, ok := t.exec.(navigator)
		if !ok {
			return fmt.Errorf("driver does not support navigation")
		}
		return nav.Navigate(context.Background(), args[0])

	case "render":
		def, err := definition.Load(t.defsPath)
		if err != nil {
			return err
		}
		if err := t.page.Render(def); err != nil {
			return err
		}
		fmt.Printf("Reloaded %s\n", t.defsPath)
		return nil
	}

	if len(args) < 1 {
		return fmt.Errorf("usage: %s <path> [args]", cmd)
	}
	node, err := t.lookup(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]

	switch cmd {
	case "text":
		text, err := node.Text()
		if err != nil {
			return err
		}
		fmt.Printf("%q\n", text)

	case "visible":
		visible, err := node.IsVisible()
		if err != nil {
			return err
		}
		fmt.Println(visible)

	case "hidden":
		hidden, err := node.IsHidden()
		if err != nil {
			return err
		}
		fmt.Println(hidden)

	case "contains":
		if len(rest) != 1 {
			return fmt.Errorf("usage: contains <path> <needle>")
		}
		ok, err := node.Contains(rest[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)

	case "click":
		return node.Click().Then(context.Background())

	case "clickon":
		if len(rest) < 1 {
			return fmt.Errorf("usage: clickon <path> <text>")
		}
		return node.ClickOn(strings.Join(rest, " ")).Then(context.Background())

	case "fill":
		if len(rest) != 1 && len(rest) != 2 {
			return fmt.Errorf("usage: fill <path> [clue] <value>")
		}
		return node.FillIn(rest...).Then(context.Background())

	case "select":
		if len(rest) != 1 && len(rest) != 2 {
			return fmt.Errorf("usage: select <path> [clue] <value>")
		}
		return node.Select(rest...).Then(context.Background())

	case "elements":
		inspector, ok := t.exec.(interfaces.Inspector)
		if !ok {
			return fmt.Errorf("driver does not support element inspection")
		}
		elements, err := inspector.Elements(context.Background(), node.Query())
		if err != nil {
			return err
		}
		for _, el := range elements {
			marker := " "
			if !el.IsVisible {
				marker = "~"
			}
			fmt.Printf("%s %-40s %s\n", marker, el.Selector, el.Text)
		}

	case "tree":
		printTree(node, 0)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// lookup - resolves a dot-separated path to a tree node
func (t *TerminalInterface) lookup(path string) (*pageobject.Node, error) {
	node := t.page
	if path == "." || path == "" {
		return node, nil
	}
	for _, key := range strings.Split(path, ".") {
		next := node.Child(key)
		if next == nil {
			return nil, fmt.Errorf("no node %q (available: %s)", path, strings.Join(node.ChildKeys(), ", "))
		}
		node = next
	}
	return node, nil
}

func printTree(node *pageobject.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	name := node.Key()
	if name == "" {
		name = "(root)"
	}
	fmt.Printf("%s%s  selector=%q\n", indent, name, node.Query().Selector)
	for _, key := range node.ChildKeys() {
		printTree(node.Child(key), depth+1)
	}
}
