package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"SellerPulse/api/recon"
)

var ErrWorkerStopped = errors.New("filter worker stopped")

// FilterResult echoes the request sequence number so the consumer can tell a
// fresh answer from one that was overtaken by a later request.
type FilterResult struct {
	Seq    uint64
	Result *AnalysisResult
}

type filterRequest struct {
	seq     uint64
	dataset *recon.FileDataSet
	context *recon.FilterContext
	prices  *recon.SkuPrices
	filters recon.FilterState
	rebuild bool
	reply   chan FilterResult
}

// FilterWorker serializes filter recalculations on one long-lived goroutine.
// Requests carry a monotonically increasing sequence number; callers that
// fire several requests in quick succession keep only the highest Seq they
// see come back.
type FilterWorker struct {
	requests chan filterRequest
	seq      atomic.Uint64

	stopOnce sync.Once
	stopped  chan struct{}
}

func NewFilterWorker(queueSize int) *FilterWorker {
	w := &FilterWorker{
		requests: make(chan filterRequest, queueSize),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *FilterWorker) run() {
	for {
		select {
		case req := <-w.requests:
			res := RunFullAnalysis(req.dataset, req.context, req.prices, req.filters, req.rebuild)
			req.reply <- FilterResult{Seq: req.seq, Result: res}
		case <-w.stopped:
			return
		}
	}
}

// NextSeq hands out the sequence number for a request about to be submitted.
func (w *FilterWorker) NextSeq() uint64 {
	return w.seq.Add(1)
}

// Submit queues one recalculation and waits for its answer. The reply channel
// is buffered so the worker never blocks on an abandoned caller.
func (w *FilterWorker) Submit(ctx context.Context, seq uint64, ds *recon.FileDataSet, fc *recon.FilterContext, prices *recon.SkuPrices, filters recon.FilterState, rebuild bool) (FilterResult, error) {
	req := filterRequest{
		seq:     seq,
		dataset: ds,
		context: fc,
		prices:  prices,
		filters: filters,
		rebuild: rebuild,
		reply:   make(chan FilterResult, 1),
	}

	select {
	case w.requests <- req:
	case <-w.stopped:
		return FilterResult{}, ErrWorkerStopped
	case <-ctx.Done():
		return FilterResult{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-w.stopped:
		return FilterResult{}, ErrWorkerStopped
	case <-ctx.Done():
		return FilterResult{}, ctx.Err()
	}
}

func (w *FilterWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopped) })
}
