// Package domain holds the segment editor contract
package domain

import glossarydom "locbridge/internal/services/glossary/domain"

// Search scopes
const (
	ScopeFile     = "file"
	ScopeLanguage = "language"
	ScopeAll      = "all"
)

// Tag styles
const (
	TagsXML     = "xml"
	TagsBracket = "bracket"
)

// StateNew is reported for units without a target state
const StateNew = "new"

// Segment is one trans-unit as shown in the editor
type Segment struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	State  string `json:"state"`
}

// ListInput lists the segments of one file
type ListInput struct {
	Path string `json:"path" validate:"required"`
	// State keeps only segments in that state; spaces and dashes are ignored. "" or "all" keeps everything
	State string `json:"state,omitempty"`
	// Search keeps segments whose id, source or target contain it, ignoring case
	Search string `json:"search,omitempty"`
}

// SaveInput sets the target of one unit
type SaveInput struct {
	Path   string `json:"path" validate:"required"`
	ID     string `json:"id" validate:"required"`
	Target string `json:"target"`
	// State is written on the target; "" leaves the current state
	State string `json:"state,omitempty"`
}

// FindInput searches target texts over a scope of the files under Root
type FindInput struct {
	Root  string `json:"root" validate:"required"`
	Scope string `json:"scope" validate:"required,oneof=file language all"`
	// File anchors the file and language scopes (relative to Root unless absolute)
	File          string `json:"file,omitempty" validate:"required_unless=Scope all"`
	Find          string `json:"find" validate:"required"`
	Regex         bool   `json:"regex,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
}

// ReplaceInput replaces matches found by FindInput
type ReplaceInput struct {
	FindInput
	Replace string `json:"replace"`
	// Backup copies each changed file to <file>.bak before rewriting it
	Backup bool `json:"backup,omitempty"`
}

// Hit is one unit whose target matched
type Hit struct {
	File   string `json:"file"`
	ID     string `json:"id"`
	Target string `json:"target"`
}

// FindResult lists the hits in file order
type FindResult struct {
	Hits     []Hit    `json:"hits"`
	Errors   int      `json:"errors"`
	Messages []string `json:"messages,omitempty"`
}

// ReplaceResult counts replaced targets and rewritten files
type ReplaceResult struct {
	Replaced     int      `json:"replaced"`
	FilesChanged int      `json:"files_changed"`
	Errors       int      `json:"errors"`
	Messages     []string `json:"messages,omitempty"`
}

// TagsInput extracts placeholders from Text
type TagsInput struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty" validate:"omitempty,oneof=xml bracket"`
}

// HintsInput looks up glossary terms for a source text
type HintsInput = glossarydom.MatchInput
