package domain

import (
	"context"

	glossarydom "locbridge/internal/services/glossary/domain"
)

// ServicePort defines the editor contract
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Segment, error)
	Save(ctx context.Context, in SaveInput) (Segment, error)
	Find(ctx context.Context, in FindInput) (FindResult, error)
	Replace(ctx context.Context, in ReplaceInput) (ReplaceResult, error)
	Tags(ctx context.Context, in TagsInput) ([]string, error)
	Hints(ctx context.Context, in HintsInput) ([]glossarydom.Match, error)
}
