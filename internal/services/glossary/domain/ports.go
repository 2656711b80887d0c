package domain

import "context"

// ServicePort is the glossary contract used by http handlers and other modules
type ServicePort interface {
	AddTerm(ctx context.Context, in AddTermInput) (Entry, error)
	Matches(ctx context.Context, in MatchInput) ([]Match, error)
}
