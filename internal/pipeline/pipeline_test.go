package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/api/recon"
)

func testDataSet() *recon.FileDataSet {
	return (&recon.FileDataSet{}).WithPayments([]recon.PaymentEntry{
		{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered", FinalPayment: decimal.NewFromInt(450)},
		{OrderID: "SO2", SKU: "KURTA-BLUE", Status: "Return", FinalPayment: decimal.NewFromInt(-50)},
	}, decimal.Zero)
}

func TestRunFullAnalysisEchoesVersion(t *testing.T) {
	ds := testDataSet()
	res := RunFullAnalysis(ds, nil, nil, recon.FilterState{}, true)

	assert.Equal(t, ds.Version, res.Version)
	require.NotNil(t, res.Context)
	assert.Len(t, res.Context.MergedOrders, 2)
	require.NotNil(t, res.Payments)
	assert.True(t, res.Payments.HasData)
}

func TestRunFullAnalysisContextOnlyWhenRebuilt(t *testing.T) {
	res := RunFullAnalysis(testDataSet(), nil, nil, recon.FilterState{}, false)
	assert.Nil(t, res.Context)
	assert.NotNil(t, res.Payments)
}

func TestRunFullAnalysisNilDataSet(t *testing.T) {
	res := RunFullAnalysis(nil, nil, nil, recon.FilterState{}, true)
	require.NotNil(t, res.Payments)
	assert.False(t, res.Payments.HasData)
	assert.False(t, res.Orders.HasData)
}

func TestPreviousPeriodDerivation(t *testing.T) {
	prev, ok := previousPeriod(recon.FilterState{
		DateStart:      "2024-03-08",
		DateEnd:        "2024-03-14",
		CalculateTrend: true,
	})
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", prev.DateStart)
	assert.Equal(t, "2024-03-07", prev.DateEnd)
	assert.False(t, prev.CalculateTrend, "previous window must not recurse")
}

func TestPreviousPeriodNeedsBothBounds(t *testing.T) {
	_, ok := previousPeriod(recon.FilterState{DateStart: "2024-03-08"})
	assert.False(t, ok)
	_, ok = previousPeriod(recon.FilterState{DateStart: "2024-03-10", DateEnd: "2024-03-01"})
	assert.False(t, ok)
}

func TestProcessFileProgressSteps(t *testing.T) {
	// A workbook that fails to parse still reports the first step.
	var seen []int
	_, _, err := ProcessFile([]byte("not a workbook"), "junk.xlsx", recon.FileTypePayments, nil, func(m Message) {
		if m.Kind == KindProgress {
			seen = append(seen, m.Percent)
		}
	})
	require.Error(t, err)
	assert.Equal(t, []int{10}, seen)
}

func TestFilterWorkerSequencesAreMonotonic(t *testing.T) {
	w := NewFilterWorker(4)
	defer w.Stop()

	a := w.NextSeq()
	b := w.NextSeq()
	assert.Greater(t, b, a)
}

func TestFilterWorkerSubmit(t *testing.T) {
	w := NewFilterWorker(4)
	defer w.Stop()

	ds := testDataSet()
	seq := w.NextSeq()
	res, err := w.Submit(context.Background(), seq, ds, nil, nil, recon.FilterState{Keyword: "tshirt"}, false)
	require.NoError(t, err)
	assert.Equal(t, seq, res.Seq)
	assert.Equal(t, ds.Version, res.Result.Version)
	require.NotNil(t, res.Result.Payments)
	assert.True(t, res.Result.Payments.HasData)
}

func TestFilterWorkerStopUnblocksSubmit(t *testing.T) {
	w := NewFilterWorker(1)
	w.Stop()

	_, err := w.Submit(context.Background(), w.NextSeq(), nil, nil, nil, recon.FilterState{}, false)
	assert.ErrorIs(t, err, ErrWorkerStopped)
}

func TestJobManagerLifecycle(t *testing.T) {
	m := NewJobManager()
	done := make(chan struct{})
	job := m.Start(func(emit func(Message)) (*AnalysisResult, error) {
		emit(progressMsg(30, "Parsing workbook"))
		close(done)
		return &AnalysisResult{}, nil
	})
	<-done

	got, ok := m.Get(job.ID)
	require.True(t, ok)
	// The goroutine settles shortly after done closes; poll the snapshot.
	var view JobView
	for i := 0; i < 200; i++ {
		view = got.Snapshot()
		if view.Status == "done" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, "done", view.Status)
	assert.Equal(t, 100, view.Percent)
	assert.NotNil(t, view.Result)
}
