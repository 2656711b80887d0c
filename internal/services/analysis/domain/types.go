// Package domain holds the word-count analysis contract
package domain

import "context"

// RunInput analyses every .xliff file directly under Root
type RunInput struct {
	Root string `json:"root" validate:"required"`
	// Glossary overrides the configured glossary workbook (relative to Root unless absolute)
	Glossary string `json:"glossary,omitempty"`
}

// LanguageStats are the word counts of one target language
type LanguageStats struct {
	Language        string `json:"language"`
	TotalWords      int    `json:"total_words"`
	Repetitions     int    `json:"repetitions"`
	GlossaryMatches int    `json:"glossary_matches"`
	NewWords        int    `json:"new_words"`
}

// Result lists the stats per language, sorted by language code
type Result struct {
	FilesAnalysed int             `json:"files_analysed"`
	Languages     []LanguageStats `json:"languages"`
	Errors        int             `json:"errors"`
	Messages      []string        `json:"messages,omitempty"`
}

// ServicePort defines the analysis contract
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (Result, error)
}
