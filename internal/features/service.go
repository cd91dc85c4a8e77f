package features

import (
	"context"

	"go.uber.org/zap"
)

// RequestKind enumerates which filters a request carries.
type RequestKind int

// Request shapes.
const (
	KindAll RequestKind = iota
	KindName
	KindID
	KindNameAndID
)

func (k RequestKind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindName:
		return "name"
	case KindID:
		return "id"
	case KindNameAndID:
		return "name+id"
	default:
		return "unknown"
	}
}

// Request selects features by site name and/or site ID. A nil slice means
// the filter was not supplied; an empty non-nil slice was supplied but
// holds nothing, so it matches nothing.
type Request struct {
	Names []Term
	IDs   []Term
}

// Kind returns the request shape.
func (r Request) Kind() RequestKind {
	switch {
	case r.Names != nil && r.IDs != nil:
		return KindNameAndID
	case r.Names != nil:
		return KindName
	case r.IDs != nil:
		return KindID
	default:
		return KindAll
	}
}

// Result is the outcome of GetFeatures.
type Result struct {
	Records  []Record
	Warnings []Warning
	Kind     RequestKind
	// Fallback is true when the full table was returned because no
	// supplied filter matched.
	Fallback bool
	// Total is the row count of the loaded table.
	Total int
}

// TableLoader retrieves the full features table.
type TableLoader interface {
	LoadAll(ctx context.Context) (Table, error)
}

// Service is the entry point for filtered feature lookups.
type Service struct {
	loader TableLoader
}

// NewService creates a Service backed by loader.
func NewService(loader TableLoader) *Service {
	return &Service{loader: loader}
}

// GetFeatures loads the table and applies the filters in req. When only
// some filters match, the matching ones are returned; when none match the
// full table is returned. Both-filter matches are concatenated, names
// first, without removing rows matched twice. Load errors are returned
// unchanged.
func (s *Service) GetFeatures(ctx context.Context, req Request) (*Result, error) {
	log := zap.L().With(zap.String("component", "features.service"))

	table, err := s.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: req.Kind(), Total: table.Len()}

	switch res.Kind {
	case KindAll:
		res.Records = table

	case KindName:
		matched, warnings := FilterByName(req.Names, table)
		res.Warnings = append(res.Warnings, warnings...)
		res.Records = s.orFallback(res, matched, FilterName, table)

	case KindID:
		matched, warnings := FilterByID(req.IDs, table)
		res.Warnings = append(res.Warnings, warnings...)
		res.Records = s.orFallback(res, matched, FilterID, table)

	case KindNameAndID:
		byName, nameWarnings := FilterByName(req.Names, table)
		byID, idWarnings := FilterByID(req.IDs, table)
		res.Warnings = append(res.Warnings, nameWarnings...)
		res.Warnings = append(res.Warnings, idWarnings...)

		switch {
		case len(byName) > 0 && len(byID) > 0:
			res.Records = make([]Record, 0, len(byName)+len(byID))
			res.Records = append(res.Records, byName...)
			res.Records = append(res.Records, byID...)
		case len(byName) > 0:
			res.Warnings = append(res.Warnings, newWarning(WarnFallback, FilterID, "",
				"no site IDs matched; returning name matches only"))
			res.Records = byName
		case len(byID) > 0:
			res.Warnings = append(res.Warnings, newWarning(WarnFallback, FilterName, "",
				"no site names matched; returning ID matches only"))
			res.Records = byID
		default:
			res.Warnings = append(res.Warnings, newWarning(WarnFallback, FilterAll, "",
				"no site names or IDs matched; returning all features"))
			res.Fallback = true
			res.Records = table
		}
	}

	logWarnings(log, res.Warnings)
	log.Debug("features selected",
		zap.Stringer("kind", res.Kind),
		zap.Int("total", res.Total),
		zap.Int("selected", len(res.Records)),
		zap.Bool("fallback", res.Fallback),
	)

	return res, nil
}

// orFallback returns matched, or the full table with a fallback warning
// when matched is empty.
func (s *Service) orFallback(res *Result, matched []Record, filter string, table Table) []Record {
	if len(matched) > 0 {
		return matched
	}
	res.Warnings = append(res.Warnings, newWarning(WarnFallback, filter, "",
		"no site %ss matched; returning all features", filterNoun(filter)))
	res.Fallback = true
	return table
}

func filterNoun(filter string) string {
	if filter == FilterID {
		return "ID"
	}
	return filter
}
