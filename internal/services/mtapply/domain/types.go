// Package domain holds the machine-translation apply contract
package domain

import "context"

// ApplyInput copies MT provider workbooks from MTDir into the master workbooks of Root
type ApplyInput struct {
	Root string `json:"root" validate:"required"`
	// MTDir holds the provider's .xlsx files (relative to Root unless absolute)
	MTDir string `json:"mt_dir" validate:"required"`
}

// Result counts the master workbooks updated out of Total
type Result struct {
	Updated  int      `json:"updated"`
	Total    int      `json:"total"`
	Errors   int      `json:"errors"`
	Messages []string `json:"messages,omitempty"`
	ErrorLog string   `json:"error_log,omitempty"`
}

// ServicePort defines the MT apply contract
type ServicePort interface {
	Apply(ctx context.Context, in ApplyInput) (Result, error)
}
