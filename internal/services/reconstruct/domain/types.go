// Package domain holds the reconstruction run contract
package domain

import "context"

// RunInput starts a reconstruction of the project at Root
type RunInput struct {
	Root string `json:"root" validate:"required"`
	// Glossary overrides the configured glossary workbook (relative to Root unless absolute)
	Glossary string `json:"glossary,omitempty"`
}

// Result summarises a reconstruction run
type Result struct {
	FilesReconstructed    int      `json:"files_reconstructed"`
	GlossaryPromoted      int      `json:"glossary_promoted"`
	StandardFilesReplaced int      `json:"standard_files_replaced"`
	Errors                int      `json:"errors"`
	Messages              []string `json:"messages,omitempty"`
	Outputs               []string `json:"outputs,omitempty"`
	ErrorLog              string   `json:"error_log,omitempty"`
}

// ServicePort defines the reconstruction contract
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (Result, error)
}
