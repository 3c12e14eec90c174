// file: internals/features/school/reconcile/service/pipeline.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// Pass names, in execution order. Each pass commits on its own so a
// failure never rolls back repairs already made by earlier passes.
const (
	PassBackfillTopics        = "backfill_topics"
	PassClearStaleAssessments = "clear_stale_assessments"
	PassLinkOrphans           = "link_orphans"
	PassLinkAssessments       = "link_assessments"
	PassMaterializeProgress   = "materialize_progress"
	PassLinkSubmissions       = "link_submissions"
	PassRepairWindows         = "repair_windows"
	PassRenumberSequences     = "renumber_sequences"
	PassValidate              = "validate"
)

type PassResult struct {
	Name      string `json:"name"`
	Mutations int64  `json:"mutations"`
	Elapsed   string `json:"elapsed"`
}

// ValidationCounts is the output of the final read-only pass. A fully
// consistent scope reports zero for every counter.
type ValidationCounts struct {
	RemainingOrphaned     int64 `json:"remaining_orphaned"`
	RemainingNoAssessment int64 `json:"remaining_no_assessment"`
	RemainingNoWindows    int64 `json:"remaining_no_windows"`
	RemainingNoMetadata   int64 `json:"remaining_no_metadata"`
	RemainingUnlinkedSubs int64 `json:"remaining_unlinked_submissions"`
	AllGood               bool  `json:"all_good"`
}

func (vc ValidationCounts) TotalIssues() int64 {
	return vc.RemainingOrphaned + vc.RemainingNoAssessment + vc.RemainingNoWindows +
		vc.RemainingNoMetadata + vc.RemainingUnlinkedSubs
}

type Report struct {
	Scope          string           `json:"scope"`
	StartedAt      time.Time        `json:"started_at"`
	FinishedAt     time.Time        `json:"finished_at"`
	Passes         []PassResult     `json:"passes"`
	TotalMutations int64            `json:"total_mutations"`
	Validation     ValidationCounts `json:"validation"`
	FailedAtPass   string           `json:"failed_at_pass,omitempty"`
}

// StepError reports which pass broke the run. Passes already listed in
// the report stayed committed.
type StepError struct {
	Pass string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("reconcile pass %s: %v", e.Pass, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// pass is one orchestrated pipeline step. The default passes wrap their
// own transaction; run itself never touches the database.
type pass struct {
	name string
	run  func(ctx context.Context) (int64, error)
}

type validateFunc func(ctx context.Context, scope Scope) (ValidationCounts, error)

type ReconcileService struct {
	DB *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{DB: db}
}

// passes builds the default pass list, each step committing its own
// transaction against the scope.
func (s *ReconcileService) passes(scope Scope) []pass {
	wrap := func(name string, fn func(tx *gorm.DB, scope Scope) (int64, error)) pass {
		return pass{
			name: name,
			run: func(ctx context.Context) (int64, error) {
				var mutations int64
				err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
					n, err := fn(tx, scope)
					mutations = n
					return err
				})
				return mutations, err
			},
		}
	}
	return []pass{
		wrap(PassBackfillTopics, s.backfillTopics),
		wrap(PassClearStaleAssessments, s.clearStaleAssessments),
		wrap(PassLinkOrphans, s.linkOrphans),
		wrap(PassLinkAssessments, s.linkAssessments),
		wrap(PassMaterializeProgress, s.materializeProgress),
		wrap(PassLinkSubmissions, s.linkSubmissions),
		wrap(PassRepairWindows, s.repairWindows),
		wrap(PassRenumberSequences, s.renumberSequences),
	}
}

// Run executes the full repair pipeline over the scope. Every pass is
// idempotent, so partial failures are safe to retry with the same scope.
func (s *ReconcileService) Run(ctx context.Context, scope Scope) (*Report, error) {
	return s.run(ctx, scope, s.passes(scope), s.Validate)
}

func (s *ReconcileService) run(ctx context.Context, scope Scope, passes []pass, validate validateFunc) (*Report, error) {
	report := &Report{
		Scope:     scope.String(),
		StartedAt: time.Now(),
	}
	log.Printf("[RECONCILE] start scope=%s", report.Scope)

	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			report.FailedAtPass = p.name
			report.FinishedAt = time.Now()
			return report, &StepError{Pass: p.name, Err: err}
		}

		started := time.Now()
		mutations, err := p.run(ctx)
		if err != nil {
			log.Printf("[RECONCILE][ERROR] pass=%s scope=%s err=%v", p.name, report.Scope, err)
			report.FailedAtPass = p.name
			report.FinishedAt = time.Now()
			return report, &StepError{Pass: p.name, Err: err}
		}

		report.Passes = append(report.Passes, PassResult{
			Name:      p.name,
			Mutations: mutations,
			Elapsed:   time.Since(started).Round(time.Millisecond).String(),
		})
		report.TotalMutations += mutations
		log.Printf("[RECONCILE] pass=%s mutations=%d elapsed=%s", p.name, mutations, time.Since(started).Round(time.Millisecond))
	}

	counts, err := validate(ctx, scope)
	if err != nil {
		report.FailedAtPass = PassValidate
		report.FinishedAt = time.Now()
		return report, &StepError{Pass: PassValidate, Err: err}
	}
	report.Validation = counts
	report.FinishedAt = time.Now()

	log.Printf("[RECONCILE] done scope=%s mutations=%d all_good=%v", report.Scope, report.TotalMutations, counts.AllGood)
	return report, nil
}
