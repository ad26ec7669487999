package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equitie-backend/internal/application/fees"
	"equitie-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// State is a step of a submission run.
type State string

const (
	StateIdle         State = "idle"
	StateSubmitting   State = "submitting"
	StateClassifying  State = "classifying"
	StateCreatingFees State = "creating_fees"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Atomicity selects whether the transaction row and its fees are written in one
// database transaction.
type Atomicity string

const (
	// BestEffort keeps a saved transaction even when its fees fail.
	BestEffort Atomicity = "best_effort"
	// Atomic rolls the transaction back when its fees fail.
	Atomic Atomicity = "atomic"
)

// ParseAtomicity maps a config value onto an Atomicity, defaulting to BestEffort.
func ParseAtomicity(s string) Atomicity {
	if strings.EqualFold(strings.TrimSpace(s), string(Atomic)) {
		return Atomic
	}
	return BestEffort
}

const (
	msgFormOptions = "Failed to load form options. Please try again."
	msgSaveFailed  = "Failed to save transaction"
)

// SubmissionError records the state a run failed in.
type SubmissionError struct {
	State State
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown on the form. A rejected transaction write
// surfaces the backend message; anything after the write is generic.
func (e *SubmissionError) UserMessage() string {
	switch e.State {
	case StateIdle:
		if errors.Is(e.Err, ErrInvalidSubmission) {
			return msgSaveFailed
		}
		return msgFormOptions
	case StateSubmitting:
		if msg := e.Err.Error(); msg != "" {
			return msg
		}
	}
	return msgSaveFailed
}

// SubmissionResult is what a run produced. Transaction is set once the row is
// written, unless an atomic run rolled it back.
type SubmissionResult struct {
	State       State               `json:"state"`
	Transaction *domain.Transaction `json:"transaction"`
	Fees        []domain.Fee        `json:"fees"`
}

// Submitter drives a transaction form submission: upsert the transaction,
// classify it and create the fees its type derives.
type Submitter struct {
	Store     Store
	Atomicity Atomicity
}

func (s *Submitter) Submit(ctx context.Context, in SubmissionInput) (*SubmissionResult, error) {
	res := &SubmissionResult{State: StateIdle, Fees: []domain.Fee{}}

	types, err := s.Store.TransactionTypes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load transaction types")
		return s.fail(res, &SubmissionError{State: StateIdle, Err: fmt.Errorf("%w: %w", ErrFormOptions, err)})
	}
	row, err := in.transaction()
	if err != nil {
		return s.fail(res, &SubmissionError{State: StateIdle, Err: err})
	}

	if s.Atomicity == Atomic {
		err = s.Store.Atomic(ctx, func(st Store) error {
			return s.run(ctx, st, types, row, in, res)
		})
		if err != nil && res.Transaction != nil {
			log.Warn().Str("transaction_id", row.TransactionID).Msg("transaction rolled back")
			res.Transaction = nil
			res.Fees = []domain.Fee{}
		}
	} else {
		err = s.run(ctx, s.Store, types, row, in, res)
		if err != nil && res.Transaction != nil {
			log.Warn().Err(err).Str("transaction_id", res.Transaction.TransactionID).
				Msg("transaction saved without its fees")
		}
	}
	if err != nil {
		return s.fail(res, err)
	}
	s.enter(res, StateDone)
	return res, nil
}

func (s *Submitter) run(ctx context.Context, st Store, types []domain.TransactionType, row *domain.Transaction, in SubmissionInput, res *SubmissionResult) error {
	s.enter(res, StateSubmitting)
	saved, err := st.UpsertTransaction(ctx, row)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", row.TransactionID).Msg("upsert transaction")
		return &SubmissionError{State: StateSubmitting, Err: err}
	}
	res.Transaction = saved

	s.enter(res, StateClassifying)
	tt, ok := findType(types, saved.TransactionTypeID)
	if !ok || !tt.DerivesFees() {
		return nil
	}
	specs, err := s.resolve(ctx, st, in.feeFields(), saved)
	if err != nil {
		return &SubmissionError{State: StateClassifying, Err: fmt.Errorf("%w: %w", ErrFeeCascade, err)}
	}
	if len(specs) == 0 {
		return nil
	}

	s.enter(res, StateCreatingFees)
	created, err := (&fees.Creator{Writer: st}).CreateFees(ctx, specs)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", saved.TransactionID).Int("fees", len(specs)).Msg("create fees")
		return &SubmissionError{State: StateCreatingFees, Err: fmt.Errorf("%w: %w", ErrFeeCascade, err)}
	}
	res.Fees = created
	return nil
}

// resolve looks up the fee type of every field concurrently and returns the
// specs in field order. The first failure cancels the remaining lookups.
func (s *Submitter) resolve(ctx context.Context, st Store, fields []feeField, saved *domain.Transaction) ([]fees.Spec, error) {
	r := &fees.Resolver{Finder: st}
	specs := make([]fees.Spec, len(fields))

	g, gctx := errgroup.WithContext(ctx)
	if s.Atomicity == Atomic {
		// one database transaction, one connection
		g.SetLimit(1)
	}
	for i, f := range fields {
		g.Go(func() error {
			id, err := r.ResolveFeeTypeID(gctx, f.FeeType)
			if err != nil {
				log.Error().Err(err).Str("fee_type", f.FeeType).Msg("resolve fee type")
				return err
			}
			specs[i] = fees.Spec{
				FeeTypeID:     id,
				ProjectID:     saved.ProjectID,
				TransactionID: &saved.ID,
				Status:        f.Status,
				Amount:        f.Amount,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return specs, nil
}

func (s *Submitter) enter(res *SubmissionResult, state State) {
	log.Debug().Str("from", string(res.State)).Str("to", string(state)).Msg("submission state")
	res.State = state
}

func (s *Submitter) fail(res *SubmissionResult, err error) (*SubmissionResult, error) {
	s.enter(res, StateFailed)
	return res, err
}

func findType(types []domain.TransactionType, id uuid.UUID) (domain.TransactionType, bool) {
	for _, t := range types {
		if t.ID == id {
			return t, true
		}
	}
	return domain.TransactionType{}, false
}
