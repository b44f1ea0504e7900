package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cordialhq/cordial/internal/scheduling/application"
	"github.com/cordialhq/cordial/internal/scheduling/domain"
	"github.com/cordialhq/cordial/pkg/observability"
	"github.com/cordialhq/cordial/pkg/timeutil"
)

// displayLayout renders instants for organizer- and contact-facing text.
const displayLayout = "Mon, Jan 2 at 3:04 PM MST"

// OptimizeRequest is one batch: one organizer, up to the configured number
// of contacts.
type OptimizeRequest struct {
	Contacts          []domain.Contact
	DateRange         domain.DateRange
	BusyIntervals     []domain.BusyInterval
	OrganizerTimezone string // optional IANA zone; UTC display and grouping when empty
	SlotsPerContact   int    // zero selects the configured default
	EnforceNotPast    bool
}

// BatchOrchestrator wires slot generation, scoring, ranking, assignment,
// local search, and the edge-case handlers into the single engine entry
// point. It is a pure function of its inputs plus the injected clock; the
// host may run many batches in parallel, each with private state.
type BatchOrchestrator struct {
	config  domain.SchedulingConfig
	clock   domain.Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewBatchOrchestrator creates an orchestrator with the given
// configuration, a system clock, and no-op observability.
func NewBatchOrchestrator(config domain.SchedulingConfig) *BatchOrchestrator {
	return &BatchOrchestrator{
		config:  config,
		clock:   domain.SystemClock{},
		logger:  observability.NopLogger(),
		metrics: observability.NoopMetrics{},
	}
}

// WithClock replaces the clock used for the past-range check.
func (o *BatchOrchestrator) WithClock(clock domain.Clock) *BatchOrchestrator {
	o.clock = clock
	return o
}

// WithLogger attaches a structured logger.
func (o *BatchOrchestrator) WithLogger(logger *slog.Logger) *BatchOrchestrator {
	o.logger = logger
	return o
}

// WithMetrics attaches a metrics collector.
func (o *BatchOrchestrator) WithMetrics(metrics observability.Metrics) *BatchOrchestrator {
	o.metrics = metrics
	return o
}

// OptimizeFromSource fetches the organizer's busy intervals from a
// calendar source, then runs Optimize. The fetch is the only potentially
// blocking call; the engine itself performs no I/O.
func (o *BatchOrchestrator) OptimizeFromSource(
	ctx context.Context,
	req OptimizeRequest,
	source application.CalendarSource,
) (*domain.BatchResult, error) {
	busy, err := source.Busy(ctx, req.DateRange)
	if err != nil {
		return nil, err
	}
	req.BusyIntervals = busy
	return o.Optimize(ctx, req)
}

// Optimize runs one batch end to end. Validation failures return an error
// with no partial result; runtime edge cases surface as warnings and
// special-handling entries on a successful result. On soft-deadline expiry
// the best assignment found so far is returned with a DEADLINE_EXCEEDED
// warning.
func (o *BatchOrchestrator) Optimize(ctx context.Context, req OptimizeRequest) (*domain.BatchResult, error) {
	started := time.Now()
	runID := uuid.New().String()
	ctx = observability.WithBatchID(ctx, runID)
	timer := observability.StartTimer("optimize_batch").WithMetrics(o.metrics)

	result, err := o.run(ctx, req, runID, started)
	timer.StopWithError(err)
	if err != nil {
		o.metrics.Counter(observability.MetricBatchErrors, 1)
		o.logger.ErrorContext(ctx, "batch failed", observability.ErrorKey, err.Error())
		return nil, err
	}
	o.metrics.Counter(observability.MetricBatchTotal, 1)
	o.metrics.Gauge(observability.MetricFairnessScore, result.Metadata.FairnessScore)
	o.logger.InfoContext(ctx, "batch completed",
		"contacts", len(result.Results),
		"slots_analyzed", result.Metadata.TotalSlotsAnalyzed,
		"fairness", result.Metadata.FairnessScore,
		observability.DurationKey, result.Metadata.ProcessingTimeMS,
	)
	return result, nil
}

func (o *BatchOrchestrator) run(ctx context.Context, req OptimizeRequest, runID string, started time.Time) (*domain.BatchResult, error) {
	zones := timeutil.NewZoneCache()

	if len(req.Contacts) == 0 {
		return o.emptyResult(runID, started), nil
	}
	organizerLoc, err := o.validate(req, zones)
	if err != nil {
		return nil, err
	}

	groupingZone := organizerLoc
	if groupingZone == nil {
		groupingZone = time.UTC
	}

	warnings := make([]domain.Warning, 0, 2)

	// Candidate slots are generated once in UTC; contact-local
	// admissibility is enforced by the scorer so one pool serves the
	// whole batch.
	generator := NewSlotGenerator(o.config)
	slots := generator.Generate(req.BusyIntervals, req.DateRange, time.UTC,
		o.config.WorkingHoursStart, o.config.WorkingHoursEnd)
	o.metrics.Counter(observability.MetricSlotsGenerated, int64(len(slots)))
	o.logger.DebugContext(ctx, "candidate slots generated", "count", len(slots))

	requested := o.config.ClampSlotsPerContact(req.SlotsPerContact)
	slotsPerContact, reduced, err := TriageAvailability(len(slots), len(req.Contacts), requested)
	if err != nil {
		return nil, err
	}
	if reduced != nil {
		warnings = append(warnings, *reduced)
	}

	bounds, err := resolveContactBounds(req.Contacts, zones, o.config)
	if err != nil {
		return nil, err
	}

	scorer := NewQualityScorer(o.config, req.BusyIntervals, groupingZone)
	matrix := BuildQualityMatrix(slots, req.Contacts, bounds, scorer)

	tzHandler := NewExtremeTimezoneHandler(o.config, generator, scorer, organizerLoc)
	handling := tzHandler.Review(matrix, req.Contacts, bounds, req.BusyIntervals, req.DateRange)

	ranked := RankByDifficulty(matrix, req.Contacts, o.config.MinimumAcceptableScore)
	assignment := NewGreedyAssigner(o.config).Assign(matrix, ranked, slotsPerContact)
	o.metrics.Counter(observability.MetricSlotsAssigned, int64(assignment.UsedCount()))

	contactOrder := make([]string, len(ranked))
	for i, c := range ranked {
		contactOrder[i] = c.ID
	}
	optimizer := NewLocalSearchOptimizer(localSearchMaxIterations, o.config.MinimumAcceptableScore)
	passes, swaps := optimizer.Optimize(ctx, assignment, matrix, contactOrder)
	o.metrics.Counter(observability.MetricLocalSearchSwaps, int64(swaps))
	o.logger.DebugContext(ctx, "local search finished", "passes", passes, "swaps", swaps)
	if ctx.Err() != nil {
		warnings = append(warnings, domain.NewDeadlineExceededWarning())
	}

	chosen := o.chosenSlots(assignment, req.Contacts)
	if overload := DetectMeetingOverload(req.BusyIntervals, chosen, groupingZone, o.config.OverloadThreshold); overload != nil {
		warnings = append(warnings, *overload)
	}

	return o.formatResult(req, runID, started, matrix, assignment, bounds,
		organizerLoc, requested, warnings, handling)
}

// localSearchMaxIterations caps local-search passes per batch.
const localSearchMaxIterations = 50

func (o *BatchOrchestrator) validate(req OptimizeRequest, zones *timeutil.ZoneCache) (*time.Location, error) {
	if len(req.Contacts) > o.config.MaxContactsPerBatch {
		return nil, domain.NewTooManyContactsError(len(req.Contacts), o.config.MaxContactsPerBatch)
	}
	if _, err := domain.NewDateRange(req.DateRange.Start, req.DateRange.End); err != nil {
		return nil, err
	}
	if req.EnforceNotPast && req.DateRange.Start.Before(o.clock.Now().Add(-24*time.Hour)) {
		return nil, domain.NewPastDateRangeError()
	}

	var organizerLoc *time.Location
	if req.OrganizerTimezone != "" {
		loc, err := zones.Load(req.OrganizerTimezone)
		if err != nil {
			return nil, domain.NewInvalidTimezoneError(req.OrganizerTimezone)
		}
		organizerLoc = loc
	}
	return organizerLoc, nil
}

func (o *BatchOrchestrator) chosenSlots(assignment *domain.Assignment, contacts []domain.Contact) []domain.Slot {
	duration := time.Duration(o.config.SlotMinutes) * time.Minute
	chosen := make([]domain.Slot, 0)
	for _, c := range contacts {
		for _, slotID := range assignment.Slots(c.ID) {
			slot, err := domain.ParseSlotID(slotID, duration)
			if err != nil {
				continue
			}
			chosen = append(chosen, slot)
		}
	}
	return chosen
}

func (o *BatchOrchestrator) formatResult(
	req OptimizeRequest,
	runID string,
	started time.Time,
	matrix *domain.QualityMatrix,
	assignment *domain.Assignment,
	bounds map[string]*contactBounds,
	organizerLoc *time.Location,
	slotsPerContact int,
	warnings []domain.Warning,
	handling []domain.SpecialHandling,
) (*domain.BatchResult, error) {
	displayLoc := organizerLoc
	if displayLoc == nil {
		displayLoc = time.UTC
	}
	duration := time.Duration(o.config.SlotMinutes) * time.Minute

	compromised := make(map[string]bool, len(handling))
	for _, h := range handling {
		if h.Code == domain.HandlingCompromise {
			compromised[h.ContactID] = true
		}
	}

	results := make([]domain.ContactResult, 0, len(req.Contacts))
	perContactAvg := make([]float64, 0, len(req.Contacts))
	emittedSum := 0
	emittedCount := 0

	for _, contact := range req.Contacts {
		b := bounds[contact.ID]
		slotIDs := assignment.Slots(contact.ID)

		suggested := make([]domain.SuggestedSlot, 0, len(slotIDs))
		contactSum := 0
		for _, slotID := range slotIDs {
			slot, err := domain.ParseSlotID(slotID, duration)
			if err != nil {
				continue
			}
			quality, _ := matrix.Get(slotID, contact.ID)
			local := slot.Start.In(b.zone)

			suggested = append(suggested, domain.SuggestedSlot{
				Slot:               slot,
				Score:              quality.Score,
				Reasoning:          quality.Reasoning,
				Explanation:        BuildExplanation(quality, local.Weekday(), local.Hour(), contact.Timezone),
				UserDisplayTime:    slot.Start.In(displayLoc).Format(displayLayout),
				ContactDisplayTime: local.Format(displayLayout),
				BelowThreshold:     quality.Score < o.config.MinimumAcceptableScore,
			})
			contactSum += quality.Score
			emittedSum += quality.Score
			emittedCount++
		}

		results = append(results, domain.ContactResult{
			Contact:           contact,
			SuggestedSlots:    suggested,
			AlternativeAction: alternativeAction(contact, len(suggested), slotsPerContact, compromised[contact.ID]),
		})
		if len(suggested) > 0 {
			perContactAvg = append(perContactAvg, float64(contactSum)/float64(len(suggested)))
		} else {
			perContactAvg = append(perContactAvg, 0)
		}
	}

	average := 0.0
	if emittedCount > 0 {
		average = float64(emittedSum) / float64(emittedCount)
	}

	return &domain.BatchResult{
		Results: results,
		Metadata: domain.BatchMetadata{
			RunID:              runID,
			TotalSlotsAnalyzed: len(matrix.SlotIDs()),
			AverageQuality:     average,
			FairnessScore:      fairnessScore(perContactAvg),
			ProcessingTimeMS:   time.Since(started).Milliseconds(),
			Algorithm:          domain.AlgorithmVersion,
			Warnings:           warnings,
			SpecialHandling:    handling,
		},
	}, nil
}

func (o *BatchOrchestrator) emptyResult(runID string, started time.Time) *domain.BatchResult {
	return &domain.BatchResult{
		Results: []domain.ContactResult{},
		Metadata: domain.BatchMetadata{
			RunID:            runID,
			FairnessScore:    100,
			ProcessingTimeMS: time.Since(started).Milliseconds(),
			Algorithm:        domain.AlgorithmVersion,
		},
	}
}

func alternativeAction(contact domain.Contact, got, wanted int, compromise bool) *domain.AlternativeAction {
	switch {
	case got == 0:
		return &domain.AlternativeAction{
			Reason:     "no suitable times found for " + contact.Name,
			Suggestion: "extend the date range or loosen working hours",
		}
	case got < wanted:
		return &domain.AlternativeAction{
			Reason:     "fewer times than requested for " + contact.Name,
			Suggestion: "extend the date range to restore the full set of options",
		}
	case compromise:
		return &domain.AlternativeAction{
			Reason:     "large timezone gap with " + contact.Name,
			Suggestion: "consider an async introduction or alternating meeting times",
		}
	default:
		return nil
	}
}

// fairnessScore is 100 minus the population standard deviation of the
// per-contact average scores, clamped to [0, 100]. A single contact is
// perfectly fair.
func fairnessScore(perContactAvg []float64) float64 {
	if len(perContactAvg) == 0 {
		return 100
	}
	mean := 0.0
	for _, v := range perContactAvg {
		mean += v
	}
	mean /= float64(len(perContactAvg))

	variance := 0.0
	for _, v := range perContactAvg {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(perContactAvg))

	score := 100 - math.Sqrt(variance)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
