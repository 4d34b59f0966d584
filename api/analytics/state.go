package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"SellerPulse/api/recon"
	"SellerPulse/internal/pipeline"
	"SellerPulse/internal/store"
)

const defaultViewMode = "dashboard"

// State is the single mutable holder of the analytics data. Everything it
// hands out is an immutable snapshot; mutation happens only through Update,
// SetPrices and SetViewMode, which persist before swapping the snapshot in.
type State struct {
	kv store.KV

	mu       sync.RWMutex
	dataset  *recon.FileDataSet
	context  *recon.FilterContext
	prices   *recon.SkuPrices
	viewMode string
	lastSeq  uint64

	// updateMu serializes read-modify-write cycles on the dataset so two
	// concurrent uploads cannot drop each other's slot.
	updateMu sync.Mutex
}

func NewState(kv store.KV) *State {
	return &State{
		kv:       kv,
		dataset:  &recon.FileDataSet{},
		viewMode: defaultViewMode,
	}
}

// Load restores the persisted dataset, prices and view mode. Missing keys
// are a fresh install, not an error.
func (s *State) Load(ctx context.Context) error {
	ds := &recon.FileDataSet{}
	if raw, err := s.kv.Get(ctx, store.KeyFiles); err == nil {
		if err := json.Unmarshal(raw, ds); err != nil {
			return fmt.Errorf("decode persisted files: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	var prices *recon.SkuPrices
	if raw, err := s.kv.Get(ctx, store.KeyPrices); err == nil {
		prices = &recon.SkuPrices{}
		if err := json.Unmarshal(raw, prices); err != nil {
			return fmt.Errorf("decode persisted prices: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	viewMode := defaultViewMode
	if raw, err := s.kv.Get(ctx, store.KeyViewMode); err == nil {
		var m string
		if json.Unmarshal(raw, &m) == nil && m != "" {
			viewMode = m
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	s.dataset = ds
	s.context = recon.BuildFilterContext(ds)
	s.prices = prices
	s.viewMode = viewMode
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current dataset, filter context and prices. All three
// are immutable; callers may hold them across a long computation.
func (s *State) Snapshot() (*recon.FileDataSet, *recon.FilterContext, *recon.SkuPrices) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.context, s.prices
}

// Update applies fn to the current dataset, persists the result and swaps it
// in together with a freshly rebuilt filter context. fn may be slow (it
// parses workbooks); concurrent Updates queue behind updateMu.
func (s *State) Update(ctx context.Context, fn func(*recon.FileDataSet) (*recon.FileDataSet, error)) (*recon.FileDataSet, error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.RLock()
	current := s.dataset
	s.mu.RUnlock()

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if next == current {
		return current, nil
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode files: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyFiles, raw); err != nil {
		return nil, err
	}

	fc := recon.BuildFilterContext(next)
	s.mu.Lock()
	s.dataset = next
	s.context = fc
	s.mu.Unlock()
	return next, nil
}

// ClearAll wipes every persisted key and resets the in-memory snapshot.
func (s *State) ClearAll(ctx context.Context) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.dataset = &recon.FileDataSet{}
	s.context = recon.BuildFilterContext(s.dataset)
	s.prices = nil
	s.viewMode = defaultViewMode
	s.mu.Unlock()
	return nil
}

func (s *State) SetPrices(ctx context.Context, p *recon.SkuPrices) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prices: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyPrices, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.prices = p
	s.mu.Unlock()
	return nil
}

func (s *State) ViewMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

func (s *State) SetViewMode(ctx context.Context, mode string) error {
	raw, err := json.Marshal(mode)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, store.KeyViewMode, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
	return nil
}

// Accept decides whether a filter result is still current. A result loses if
// a later request already landed, or if the dataset moved on while it was
// being computed. Last one wins.
func (s *State) Accept(res pipeline.FilterResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Seq < s.lastSeq {
		return false
	}
	if res.Result != nil && res.Result.Version < s.dataset.Version {
		return false
	}
	s.lastSeq = res.Seq
	return true
}
