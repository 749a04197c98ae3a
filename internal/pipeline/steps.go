package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jlogtenberg/leakscan/internal/detector"
	"github.com/jlogtenberg/leakscan/internal/domain"
	"github.com/jlogtenberg/leakscan/internal/har"
	"github.com/jlogtenberg/leakscan/internal/model"
	"github.com/jlogtenberg/leakscan/internal/profile"
	"github.com/jlogtenberg/leakscan/internal/search"
)

// ProfileStep resolves the country and country profile for the site.
// An explicit country override on the scan wins over the site-language
// mapping; unknown sites and countries degrade per the resolver contract.
type ProfileStep struct {
	// resolver performs the site → country → profile resolution.
	resolver *profile.Resolver

	// logger for structured logging.
	logger *slog.Logger
}

// ProfileStepOption configures a ProfileStep.
type ProfileStepOption func(*ProfileStep)

// WithProfileLogger sets a custom logger for the profile step.
func WithProfileLogger(logger *slog.Logger) ProfileStepOption {
	return func(s *ProfileStep) {
		s.logger = logger
	}
}

// NewProfileStep creates a profile resolution step.
func NewProfileStep(resolver *profile.Resolver, opts ...ProfileStepOption) *ProfileStep {
	s := &ProfileStep{
		resolver: resolver,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ProfileStep) Name() string {
	return "resolve_profile"
}

// Do resolves the scan's country and profile.
func (s *ProfileStep) Do(_ context.Context, scan *SiteScan) error {
	if scan.CountryOverride != "" {
		scan.Country = scan.CountryOverride
		scan.Profile = s.resolver.Profile(scan.Country)
	} else {
		scan.Country, scan.Profile = s.resolver.Resolve(scan.Site)
	}

	if len(scan.Profile) == 0 {
		// Detection continues with general data only; profile-derived
		// search strings degrade to empty or malformed values.
		s.logger.Warn("no profile for country, proceeding with empty profile",
			"site", scan.Site,
			"country", scan.Country,
		)
	}

	return nil
}

// SearchStringStep builds the site's search-string collection and
// constructs the detector instance over it.
type SearchStringStep struct {
	// general is the country-independent user data.
	general model.Record

	// detectorConfig fixes the transform sets and layer depths.
	detectorConfig detector.Config

	// logger for structured logging.
	logger *slog.Logger
}

// SearchStringStepOption configures a SearchStringStep.
type SearchStringStepOption func(*SearchStringStep)

// WithSearchStringLogger sets a custom logger for the search-string step.
func WithSearchStringLogger(logger *slog.Logger) SearchStringStepOption {
	return func(s *SearchStringStep) {
		s.logger = logger
	}
}

// NewSearchStringStep creates a search-string generation step.
func NewSearchStringStep(general model.Record, detectorConfig detector.Config, opts ...SearchStringStepOption) *SearchStringStep {
	s := &SearchStringStep{
		general:        general,
		detectorConfig: detectorConfig,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SearchStringStep) Name() string {
	return "generate_search_strings"
}

// Do generates the search strings and constructs the site's detector.
func (s *SearchStringStep) Do(_ context.Context, scan *SiteScan) error {
	scan.SearchStrings = search.Strings(s.general, scan.Profile, scan.Site)
	scan.Detector = detector.New(scan.SearchStrings, s.detectorConfig)

	s.logger.Debug("search strings generated",
		"site", scan.Site,
		"count", len(scan.SearchStrings),
	)

	return nil
}

// DetectStep walks the site's capture entry by entry, checks every
// extracted field with the detector, and accumulates leaks under the
// entry's resolving domain. At the end it formats the site result when at
// least one domain group is non-empty.
type DetectStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// DetectStepOption configures a DetectStep.
type DetectStepOption func(*DetectStep)

// WithDetectLogger sets a custom logger for the detect step.
func WithDetectLogger(logger *slog.Logger) DetectStepOption {
	return func(s *DetectStep) {
		s.logger = logger
	}
}

// NewDetectStep creates a leak detection step.
func NewDetectStep(opts ...DetectStepOption) *DetectStep {
	s := &DetectStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect_leaks"
}

// Do loads the capture and runs detection over every entry in order.
func (s *DetectStep) Do(ctx context.Context, scan *SiteScan) error {
	capture, err := har.Load(scan.HARPath)
	if err != nil {
		return err
	}

	for i := range capture.Log.Entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry := &capture.Log.Entries[i]
		entryLeaks := CheckEntry(scan.Detector, entry)
		if len(entryLeaks) == 0 {
			continue
		}

		domainKey := domain.Resolve(entry.Request.URL)
		scan.Leaks.Add(domainKey, entryLeaks)
	}

	if result, ok := scan.Leaks.Result(scan.Site); ok {
		scan.Result = &result
		s.logger.Info("leaks found",
			"site", scan.Site,
			"domains", len(result.Leaks),
			"leaks", result.TotalLeaks(),
		)
	}

	return nil
}

// CheckEntry checks every extracted field of one entry and returns the
// normalized leak records in field order. Each record's leak method is the
// name of the field the detection call ran against.
func CheckEntry(det detector.Detector, entry *har.Entry) []model.LeakRecord {
	timestamp := entry.Timestamp()

	var leaks []model.LeakRecord
	for _, field := range har.Fields(entry) {
		matches := checkField(det, field)
		for _, m := range matches {
			leaks = append(leaks, model.LeakRecord{
				LeakedValue:    m.Value,
				EncodingOrHash: strings.Join(m.Chain, "-"),
				LeakMethod:     field.Name,
				Timestamp:      timestamp,
			})
		}
	}
	return leaks
}

// checkField dispatches a field to its detector operation.
func checkField(det detector.Detector, field har.Field) []detector.Match {
	switch field.Kind {
	case har.CheckURL:
		return det.CheckURL(field.Value)
	case har.CheckReferrer:
		return det.CheckReferrer(field.Value)
	case har.CheckPostData:
		return det.CheckPostData(field.Value)
	case har.CheckLocation:
		return det.CheckLocationHeader(field.Value)
	case har.CheckCookie:
		return det.CheckCookieString(field.Value)
	default:
		return nil
	}
}
