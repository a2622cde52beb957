// SPDX-License-Identifier: Apache-2.0

// Package persona renders a per-agent YAML descriptor into the single
// instruction string sent to the model as a system prompt.
package persona

import (
	"fmt"
	"os"
	"strings"

	"github.com/sunnydevs-club/parley/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	promptHeader = "### SYSTEM INSTRUCTION FILE START ###\n\n" +
		"Always answer without any markdown formatting and do not include any tables or lists unless explicitly instructed to do so. " +
		"Since it is a dialogue keep your answers short, concise, and to the point. Your response should not exceed 2 paragraphs in length or 1 minute of speech with normal pace. " +
		"Always keep in mind that this is a dialogue between two AI models representing personas of specific professors whose persona is specified below. Both professors are arguing/debating on a topic provided by a user, who is a student seeking to understand different perspectives on the topic. " +
		"You should NEVER break a character provided to you. Always think and response critically and analytically, but all your critique MUST BE based on facts and logical reasoning.\n\n" +
		"Read and strictly adhere to the following configuration which provides contextual information and constraints for your entire session.\n\n" +
		"```command_config\n"

	promptFooter = "\n```\n\n" +
		"AND ONCE MORE, NO MARKDOWN, NO TABLES, ONLY DIALOGUE STYLE. SHOULD NOT EXCEED 200 CHARS\n" +
		"### SYSTEM INSTRUCTION FILE END ###"

	emptyPrompt = "### SYSTEM INSTRUCTION FILE START ###\n\n" +
		"No configuration provided.\n\n" +
		"### SYSTEM INSTRUCTION FILE END ###"
)

// Render reads the YAML descriptor at path and produces the instruction
// string. Every top-level key becomes a tagged block; empty values are
// skipped. Rendering is deterministic: blocks follow the descriptor's own
// key order.
func Render(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.CodeNotFound, "system prompt file not found: %s", path)
		}
		return "", errors.New(errors.CodeStorageError, "reading system prompt file", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return "", errors.New(errors.CodeInvalidInput, "parsing system prompt file", err)
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return emptyPrompt, nil
	}

	var parts []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		section := formatSection(key, root.Content[i+1])
		if section != "" {
			parts = append(parts, section)
		}
	}

	if len(parts) == 0 {
		return emptyPrompt, nil
	}
	return strings.TrimSpace(promptHeader + strings.Join(parts, "\n\n") + promptFooter), nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// formatSection renders one top-level key as a tagged block. Scalars are
// embedded verbatim, lists become bullet lines and mappings become
// "Key: value" lines with one level of recursion.
func formatSection(key string, value *yaml.Node) string {
	tag := tagName(key)

	switch value.Kind {
	case yaml.ScalarNode:
		text := strings.TrimSpace(value.Value)
		if text == "" || value.Tag == "!!null" {
			return ""
		}
		return fmt.Sprintf("<%s>\n%s\n</%s>", tag, text, tag)

	case yaml.SequenceNode:
		var items []string
		for _, item := range value.Content {
			if text := scalarText(item); text != "" {
				items = append(items, "- "+text)
			}
		}
		if len(items) == 0 {
			return ""
		}
		return fmt.Sprintf("<%s>\n%s\n</%s>", tag, strings.Join(items, "\n"), tag)

	case yaml.MappingNode:
		return formatMappingSection(tag, value)
	}

	return ""
}

func formatMappingSection(tag string, node *yaml.Node) string {
	var lines []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		displayKey := titleCase(node.Content[i].Value)
		value := node.Content[i+1]

		switch value.Kind {
		case yaml.ScalarNode:
			if text := scalarText(value); text != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", displayKey, text))
			}

		case yaml.SequenceNode:
			var items []string
			for _, item := range value.Content {
				if text := scalarText(item); text != "" {
					items = append(items, text)
				}
			}
			if len(items) > 0 {
				lines = append(lines, fmt.Sprintf("%s: %s", displayKey, strings.Join(items, "; ")))
			}

		case yaml.MappingNode:
			// Deeper nesting is flattened to indented k: v lines.
			var nested []string
			for j := 0; j+1 < len(value.Content); j += 2 {
				if text := scalarText(value.Content[j+1]); text != "" {
					nested = append(nested, fmt.Sprintf("  %s: %s", value.Content[j].Value, text))
				}
			}
			if len(nested) > 0 {
				lines = append(lines, displayKey+":\n"+strings.Join(nested, "\n"))
			}
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("<%s>\n%s\n</%s>", tag, strings.Join(lines, "\n"), tag)
}

func scalarText(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return strings.TrimSpace(node.Value)
}

// tagName normalizes a YAML key to an upper-snake tag.
func tagName(key string) string {
	key = strings.ToUpper(key)
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "-", "_")
}

// titleCase turns snake_case keys into display form, e.g. "greeting_style"
// becomes "Greeting Style".
func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
