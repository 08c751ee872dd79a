package exchange

import (
	"context"
	"fmt"

	"github.com/harrison/exchange/internal/models"
)

// Lister runs one enumeration of the exchange and applies an Action to every
// matched directory, strictly in order.
type Lister struct {
	query    Query
	action   Action
	reporter Reporter
}

// NewLister creates a Lister. action and reporter must be non-nil.
func NewLister(query Query, action Action, reporter Reporter) *Lister {
	if action == nil {
		panic("action cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	return &Lister{
		query:    query,
		action:   action,
		reporter: reporter,
	}
}

// Run validates the query, resolves the pattern, enumerates it and processes
// every match. It stops at the first error; entries processed before the
// error are included in the returned result.
func (l *Lister) Run(ctx context.Context) (*models.RunResult, error) {
	result := &models.RunResult{}
	if err := l.query.Validate(); err != nil {
		return result, err
	}
	result.Pattern = l.query.Pattern()

	paths, err := Enumerate(result.Pattern)
	if err != nil {
		return result, err
	}

	l.reporter.LogInfo(l.action.Header(l.query.Direction))

	for _, path := range paths {
		entry, err := Parse(l.query.Direction, path)
		if err != nil {
			return result, err
		}

		deleted, err := l.action.Apply(ctx, entry)
		if err != nil {
			return result, fmt.Errorf("process %s: %w", entry.Line(), err)
		}
		result.Entries = append(result.Entries, entry)
		if deleted {
			result.Removed = append(result.Removed, entry)
		}
	}

	return result, nil
}
