package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with itself:
	// 1. Every topic listed in readme.md can be loaded by GetTopic.
	// 2. Every .md file (except readme.md) is listed in readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("no topics listed in readme.md")
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), ".md")
		if base == "readme" {
			continue
		}
		found := false
		for _, topic := range topicsInReadme {
			if topic == base {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", base)
		}
	}
}

func TestTopicsStartWithHeading(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			first := root.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok || heading.Level != 1 {
				t.Errorf("topic %q does not start with a level-1 heading", topic)
			}
		})
	}
}

func TestGetTopicStar(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Quickstart", "# Journal", "# Pricing", "# Rebalancing", "# Importing"} {
		if !strings.Contains(all, want) {
			t.Errorf("star topic missing %q", want)
		}
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Fatal("unknown topic loaded")
	}
}
