package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for the test corpus

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ww" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addLanguageSeeds covers every statement form plus the error-recovery
// shapes the parser special-cases.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"world \"Aethel\" {\n\tgenre fantasy\n}\n",
		"Kael is a character {\n\tspecies human\n\tage 34\n}\n",
		"the Silver Company is a faction {\n\tled by Kael\n\tallied with the Crown\n}\n",
		"the Keep is a fortress {\n\tnorth to the Gate\n\tsouth to the Yard\n}\n",
		"@hidden @owner(Kael)\nthe Vault is a location {\n}\n",
		"the Fall is an event {\n\tdate year 312 era \"Second Age\"\n\tinvolving [Kael, the Keep]\n}\n",
		"the Blade is an artifact {\n\t\"\"\"\n\tForged in the deep.\n\t\"\"\"\n\towned by Kael\n}\n",
		"Kael is a character {\n\ttags [hero, \"one two\", lost]\n\theight 1.84\n\talive true\n}\n",
		"# comment only\n",
		"world \"A\" {\nKael is a character {\n}\n", // unclosed world body
		"Kael is a {\n}\n",                          // missing kind
		"the Keep is a fortress {\n\tnorth to\n}\n", // missing exit target
		"x\n{\n}\n",
		"Kael is a character {\n\tinvolving [a, b\n}\n", // unterminated list
		"\"unterminated\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
