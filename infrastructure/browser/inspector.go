package browser

import (
	"context"
	"fmt"

	"pageobject/domain/entities"
)

// elementsJS walks a scope and reports its interactive elements with a
// best-effort unique selector per element, preferring test-id style
// attributes over ids over classes.
const elementsJS = `
(rootSelector) => {
	const root = rootSelector ? document.querySelector(rootSelector) : document.body;
	if (!root) return [];

	const elements = [];
	const seen = new Set();
	const interactive = root.querySelectorAll(
		'button, a, input, select, textarea, [role="button"], [onclick], [data-testid], [aria-label]'
	);

	interactive.forEach(el => {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		const isVisible = rect.width > 0 && rect.height > 0 &&
			style.display !== 'none' && style.visibility !== 'hidden';

		const tagName = el.tagName.toLowerCase();
		const text = (el.value || el.placeholder || el.textContent?.trim() || '').substring(0, 200);

		let uniqueSelector = tagName;
		if (el.getAttribute('data-testid')) {
			uniqueSelector = '[data-testid="' + el.getAttribute('data-testid') + '"]';
		} else if (el.id) {
			uniqueSelector = '#' + el.id;
		} else if (el.getAttribute('aria-label')) {
			uniqueSelector = tagName + '[aria-label="' + el.getAttribute('aria-label') + '"]';
		} else if (el.getAttribute('name')) {
			uniqueSelector = tagName + '[name="' + el.getAttribute('name') + '"]';
		} else if (typeof el.className === 'string' && el.className) {
			const classes = el.className.split(' ').filter(c => c).slice(0, 2).join('.');
			if (classes) {
				uniqueSelector = tagName + '.' + classes;
			}
		}

		if (seen.has(uniqueSelector)) return;
		seen.add(uniqueSelector);

		const attributes = {};
		Array.from(el.attributes).forEach(attr => {
			if (attr.name.startsWith('data-') || ['id', 'class', 'name', 'type', 'aria-label'].includes(attr.name)) {
				attributes[attr.name] = attr.value;
			}
		});

		elements.push({
			tag: tagName,
			selector: uniqueSelector,
			text: text,
			attributes: attributes,
			isVisible: isVisible,
			isClickable: el.disabled !== true
		});
	});

	return elements.slice(0, 100);
}
`

// Elements - lists the interactive elements within the query's scope
func (p *PlaywrightExecution) Elements(ctx context.Context, q entities.Query) ([]entities.Element, error) {
	scope := q.Selector
	if q.Container != "" {
		if scope == "" {
			scope = q.Container
		} else {
			scope = q.Container + " " + scope
		}
	}

	result, err := p.page.Evaluate(elementsJS, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to extract elements: %w", err)
	}

	raw, ok := result.([]interface{})
	if !ok {
		return []entities.Element{}, nil
	}

	elements := make([]entities.Element, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		element := entities.Element{
			Tag:         getString(m, "tag"),
			Selector:    getString(m, "selector"),
			Text:        getString(m, "text"),
			Attributes:  make(map[string]string),
			IsVisible:   getBool(m, "isVisible"),
			IsClickable: getBool(m, "isClickable"),
		}

		if attrs, ok := m["attributes"].(map[string]interface{}); ok {
			for k, v := range attrs {
				if s, ok := v.(string); ok {
					element.Attributes[k] = s
				}
			}
		}

		elements = append(elements, element)
	}

	return elements, nil
}

// getString - extracts string value from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// getBool - extracts boolean value from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
