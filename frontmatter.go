package nb2md

import (
	"fmt"
	"strings"
)

// frontMatterLines builds the Jekyll front matter block prepended to every
// rendered document. The field set and order match what the minimal-mistakes
// "single" layout expects; the trailing empty string separates the block
// from the first cell.
func frontMatterLines(title, categories string, tags []string) []string {
	return []string{
		"---",
		"layout: single",
		fmt.Sprintf("title: %q", title),
		"categories: " + categories,
		"tag: [" + strings.Join(tags, ", ") + "]",
		"toc: true",
		"author_profile: false",
		"---",
		"",
	}
}
