// Package docs embeds the vnf manual: one markdown file per topic, with
// readme.md as the table of contents.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var pages embed.FS

// GetTopic returns the content of one topic. The special name "*" expands
// to the whole manual.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}
	content, err := pages.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, run 'vnf topic readme' for the list", topic)
	}
	return string(content), nil
}

// GetTopics concatenates topics in the given order, expanding "*".
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			expanded, err := GetTopics(all...)
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
			continue
		}
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics lists the embedded topics in name order. The readme is the
// index page, not a topic.
func GetAllTopics() ([]string, error) {
	names, err := fs.Glob(pages, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, name := range names {
		topic := strings.TrimSuffix(name, ".md")
		if topic == "readme" {
			continue
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
