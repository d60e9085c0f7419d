package weft

import (
	"context"
	"fmt"
)

// AIProvider is the interface for the translation backend. Implementations
// must keep the returned structure identity-identical to the request's
// projection: only text values change.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error)
}

// TranslateRequest carries one projection and its target locale to the
// translation backend.
type TranslateRequest struct {
	Projection     Projection
	TargetTag      string   // language tag of the target locale, e.g. "fr-FR"
	PreservedTerms []string // terms kept in the source language verbatim
	BrandPrefix    string   // lead token whose following word stays untranslated
}

// WriteFunc pushes a reconciled write payload to the content store for one
// locale. The store treats this as one authoritative mutation in flight at a
// time, which is why batches never run locales concurrently.
type WriteFunc func(ctx context.Context, target LocaleTarget, req WriteRequest) error

// Reviewer suspends a batch between translation and write, handing the
// translated structure to an external (human) review. It returns the edited
// result and whether the write was approved. The batch holds no remote locks
// while suspended.
type Reviewer interface {
	Review(ctx context.Context, target LocaleTarget, result *TranslationResult) (*TranslationResult, bool, error)
}

// State is the per-locale position in the batch state machine.
type State string

const (
	StatePending           State = "pending"
	StateTranslating       State = "translating"
	StateReviewing         State = "reviewing"
	StateWriting           State = "writing"
	StateSucceeded         State = "succeeded"
	StateTranslationFailed State = "translation_failed"
	StateWriteFailed       State = "write_failed"
	// StateSkipped records a reviewer declining the write; nothing was pushed.
	StateSkipped State = "skipped"
)

// Terminal reports whether a state ends a locale's processing.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateTranslationFailed, StateWriteFailed, StateSkipped:
		return true
	}
	return false
}

// Outcome is the terminal result for one locale. Err keeps the raw upstream
// error alongside the locale it belongs to so a failure can be replayed
// manually.
type Outcome struct {
	Target LocaleTarget
	State  State
	Result *TranslationResult // the structure that was (or would be) written
	Err    error
}

// BatchRun drives the extract → translate → (review) → write pipeline across
// an ordered set of target locales, one locale at a time. It is a finite
// cursor: Next yields one terminal outcome per call until the targets are
// exhausted. A run is not restartable mid-sequence except through an
// explicit ResumeFrom; a fresh run starts at index zero.
type BatchRun struct {
	projection Projection
	targets    []LocaleTarget
	provider   AIProvider
	write      WriteFunc
	reviewer   Reviewer
	pacer      *Pacer
	terms      []string
	prefix     string

	index    int
	outcomes []Outcome
}

// BatchOption configures a BatchRun.
type BatchOption func(*BatchRun)

// WithReviewer switches the run into the reviewer role: every locale pauses
// after translation until the reviewer approves or declines the write.
func WithReviewer(r Reviewer) BatchOption {
	return func(b *BatchRun) {
		b.reviewer = r
	}
}

// WithPacer replaces the default inter-locale pacer.
func WithPacer(p *Pacer) BatchOption {
	return func(b *BatchRun) {
		b.pacer = p
	}
}

// WithPreservedTerms replaces the default preservation list.
func WithPreservedTerms(terms []string) BatchOption {
	return func(b *BatchRun) {
		b.terms = terms
	}
}

// NewBatchRun creates a batch over the given projection and targets. Without
// a reviewer option the run operates in the writer role: translate, write
// immediately, advance.
func NewBatchRun(projection Projection, targets []LocaleTarget, provider AIProvider, write WriteFunc, opts ...BatchOption) *BatchRun {
	b := &BatchRun{
		projection: projection,
		targets:    targets,
		provider:   provider,
		write:      write,
		pacer:      NewPacer(DefaultPaceInterval),
		terms:      PreservedTerms,
		prefix:     BrandPrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of target locales.
func (b *BatchRun) Len() int {
	return len(b.targets)
}

// Index returns the cursor position: the next locale to be processed.
func (b *BatchRun) Index() int {
	return b.index
}

// Outcomes returns the outcomes recorded so far, in locale order.
func (b *BatchRun) Outcomes() []Outcome {
	return b.outcomes
}

// ResumeFrom resets the cursor to the given locale index, discarding
// outcomes from that index on. It is the only way to re-enter a sequence:
// a locale that already dispatched its write cannot be rolled back, only
// re-run.
func (b *BatchRun) ResumeFrom(index int) error {
	if index < 0 || index > len(b.targets) {
		return &InvalidInputError{Message: fmt.Sprintf("resume index %d out of range [0,%d]", index, len(b.targets))}
	}
	b.index = index
	if index < len(b.outcomes) {
		b.outcomes = b.outcomes[:index]
	}
	return nil
}

// Next processes the next locale through its full pipeline and returns its
// terminal outcome. The second return is false once the sequence is
// exhausted. A failed locale never aborts the sequence; the caller decides
// whether to keep draining.
func (b *BatchRun) Next(ctx context.Context) (Outcome, bool) {
	if b.index >= len(b.targets) {
		return Outcome{}, false
	}

	// Fixed pacing between locales. The pacer's first pass is immediate, so
	// only the second locale onward actually waits.
	if err := b.pacer.Wait(ctx); err != nil {
		out := Outcome{
			Target: b.targets[b.index],
			State:  StateTranslationFailed,
			Err:    err,
		}
		b.record(out)
		return out, true
	}

	target := b.targets[b.index]
	out := b.processLocale(ctx, target)
	b.record(out)
	return out, true
}

// Run drains the remaining sequence and returns the per-locale report.
func (b *BatchRun) Run(ctx context.Context) []Outcome {
	for {
		if _, ok := b.Next(ctx); !ok {
			break
		}
	}
	return b.outcomes
}

func (b *BatchRun) record(out Outcome) {
	b.outcomes = append(b.outcomes, out)
	b.index++
}

func (b *BatchRun) processLocale(ctx context.Context, target LocaleTarget) Outcome {
	result, err := b.provider.Translate(ctx, TranslateRequest{
		Projection:     b.projection,
		TargetTag:      target.Tag,
		PreservedTerms: b.terms,
		BrandPrefix:    b.prefix,
	})
	if err != nil {
		return Outcome{
			Target: target,
			State:  StateTranslationFailed,
			Err:    fmt.Errorf("translating to %s: %w", target.Tag, err),
		}
	}

	if b.reviewer != nil {
		edited, approved, err := b.reviewer.Review(ctx, target, result)
		if err != nil {
			return Outcome{
				Target: target,
				State:  StateSkipped,
				Result: result,
				Err:    fmt.Errorf("reviewing %s: %w", target.Tag, err),
			}
		}
		if !approved {
			return Outcome{Target: target, State: StateSkipped, Result: result}
		}
		if edited != nil {
			result = edited
		}
	}

	if err := b.write(ctx, target, WritePayload(result)); err != nil {
		return Outcome{
			Target: target,
			State:  StateWriteFailed,
			Result: result,
			Err:    fmt.Errorf("writing %s: %w", target.Tag, err),
		}
	}

	return Outcome{Target: target, State: StateSucceeded, Result: result}
}
