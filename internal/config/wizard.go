package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/casegallery/internal/carousel"
)

// dataCandidates are common locations of the cases document, checked in order.
var dataCandidates = []string{
	"static/data/cases.json",
	"data/cases.json",
	"cases.json",
}

// detectDataFile returns the first existing cases document in the current
// directory, or the default path when none exists.
func detectDataFile() (path string, found bool) {
	for _, candidate := range dataCandidates {
		matches, _ := filepath.Glob(candidate)
		if len(matches) > 0 {
			return matches[0], true
		}
	}
	return DefaultConfig().Data, false
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to casegallery! Let's configure your gallery.")
	fmt.Println()

	cfg := DefaultConfig()

	dataPath, found := detectDataFile()
	if found {
		fmt.Printf("Detected cases document: %s\n\n", dataPath)
	}

	// 1. Title.
	titlePrompt := promptui.Prompt{
		Label:   "Gallery title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}

	// 2. Cases source.
	dataPrompt := promptui.Prompt{
		Label:   "Cases document (path, glob or URL)",
		Default: dataPath,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a cases document is required")
			}
			return nil
		},
	}
	data, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cases document: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Highlighting.
	highlightPrompt := promptui.Select{
		Label: "Highlight code sections",
		Items: []string{
			"client: Prism in the browser",
			"server: pre-rendered at build time",
		},
	}
	highlightIdx, _, err := highlightPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight selection: %w", err)
	}
	modes := []HighlightMode{HighlightClient, HighlightServer}

	// 5. Videos.
	videosPrompt := promptui.Prompt{
		Label:   "Demo video files (comma-separated, leave blank for the built-in list)",
		Default: "",
	}
	videosStr, err := videosPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("videos: %w", err)
	}

	cfg.Title = title
	cfg.Data = data
	cfg.OutputDir = outputDir
	cfg.CodeHighlight = modes[highlightIdx]
	if files := splitAndTrim(videosStr); len(files) > 0 {
		cfg.Videos = make([]carousel.Video, len(files))
		for i, f := range files {
			cfg.Videos[i] = carousel.Video{
				Src:   f,
				Title: fmt.Sprintf("Video Demo %d: %s", i+1, strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))),
			}
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
