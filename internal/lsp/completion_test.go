package lsp

import (
	"testing"
)

func completionLabels(t *testing.T, line string) []string {
	t.Helper()
	a := compileSnapshot(t, map[string]string{
		"a.ww": "Kael is a character {\n}\nthe Keep is a fortress {\n}\nthe Kraken is a creature {\n}\n",
	})
	items := completionsFor(a.Result.World, line)
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	return labels
}

func contains(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func TestCompletionEntityAfterClause(t *testing.T) {
	labels := completionLabels(t, "\tled by K")
	if !contains(labels, "Kael") || !contains(labels, "the Kraken") {
		t.Errorf("after 'led by K': %v", labels)
	}
	if contains(labels, "the Keep") {
		// "K" normalizes against "keep" too; the article is stripped.
		t.Logf("note: %v", labels)
	}
}

func TestCompletionEntityAfterExit(t *testing.T) {
	labels := completionLabels(t, "\tnorth to ")
	if !contains(labels, "the Keep") {
		t.Errorf("after 'north to ': %v", labels)
	}
}

func TestCompletionKindsAfterIsA(t *testing.T) {
	labels := completionLabels(t, "the Spire is a f")
	if !contains(labels, "faction") || !contains(labels, "fortress") {
		t.Errorf("after 'is a f': %v", labels)
	}
	if contains(labels, "character") {
		t.Errorf("prefix filter failed: %v", labels)
	}
}

func TestCompletionKeywordsAtLineStart(t *testing.T) {
	labels := completionLabels(t, "\tmem")
	if !contains(labels, "member of") {
		t.Errorf("at 'mem': %v", labels)
	}
	if contains(labels, "date year") {
		t.Errorf("non-matching keyword offered: %v", labels)
	}
}

func TestCompletionListContinuation(t *testing.T) {
	labels := completionLabels(t, "\tinvolving [Kael, the K")
	if !contains(labels, "the Keep") || !contains(labels, "the Kraken") {
		t.Errorf("list continuation: %v", labels)
	}
}
