// Package domain holds the export run contract
package domain

import "context"

// RunInput starts an export of every .xliff file directly under Root
type RunInput struct {
	Root string `json:"root" validate:"required"`
	// Glossary overrides the configured glossary workbook (relative to Root unless absolute)
	Glossary string `json:"glossary,omitempty"`
}

// Result summarises an export run
type Result struct {
	FilesProcessed   int      `json:"files_processed"`
	LanguagesWritten int      `json:"languages_written"`
	Errors           int      `json:"errors"`
	Messages         []string `json:"messages,omitempty"`
	Workbooks        []string `json:"workbooks,omitempty"`
	ErrorLog         string   `json:"error_log,omitempty"`
}

// ServicePort defines the export contract
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (Result, error)
}
