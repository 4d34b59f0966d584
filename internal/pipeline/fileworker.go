package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"SellerPulse/api/ingest"
	"SellerPulse/api/recon"
)

// Message kinds emitted while a file moves through the pipeline.
const (
	KindStatus   = "status"
	KindProgress = "progress"
	KindDone     = "done"
	KindError    = "error"
)

type Message struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Percent int    `json:"percent,omitempty"`
	Err     string `json:"error,omitempty"`
}

func progressMsg(percent int, stage string) Message {
	return Message{Kind: KindProgress, Percent: percent, Stage: stage}
}

// ProcessFile parses one uploaded workbook and folds it into the dataset,
// reporting coarse progress along the way. The returned dataset is a new
// snapshot; the input is never mutated.
func ProcessFile(data []byte, filename string, t recon.FileType, ds *recon.FileDataSet, emit func(Message)) (*recon.FileDataSet, *ingest.DecodedFile, error) {
	if emit == nil {
		emit = func(Message) {}
	}
	if ds == nil {
		ds = &recon.FileDataSet{}
	}

	emit(progressMsg(10, "Reading file"))
	wb, err := ingest.OpenWorkbook(data, filename)
	if err != nil {
		return nil, nil, err
	}

	emit(progressMsg(30, "Parsing workbook"))
	decoded, err := ingest.DecodeWorkbook(wb, t)
	if err != nil {
		return nil, nil, err
	}

	emit(progressMsg(60, "Merging data"))
	var next *recon.FileDataSet
	switch t {
	case recon.FileTypePayments:
		next = ds.WithPayments(decoded.Payments, decoded.AdsCost)
	case recon.FileTypeOrders:
		next = ds.WithOrders(decoded.Orders)
	case recon.FileTypeReturns:
		next = ds.WithReturns(decoded.Returns)
	default:
		next = ds
	}

	emit(progressMsg(75, "Calculating analytics"))
	return next, decoded, nil
}

// Job tracks one background upload. Large files are processed off the
// request goroutine and polled by the client.
type Job struct {
	ID string

	mu      sync.Mutex
	status  string
	stage   string
	percent int
	errMsg  string
	result  *AnalysisResult
	doneAt  time.Time
}

// JobView is the poll response snapshot.
type JobView struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Stage   string          `json:"stage,omitempty"`
	Percent int             `json:"percent"`
	Error   string          `json:"error,omitempty"`
	Result  *AnalysisResult `json:"result,omitempty"`
}

func (j *Job) apply(m Message) {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch m.Kind {
	case KindProgress:
		j.percent = m.Percent
		j.stage = m.Stage
	case KindStatus:
		j.stage = m.Stage
	}
}

func (j *Job) Snapshot() JobView {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobView{
		ID:      j.ID,
		Status:  j.status,
		Stage:   j.stage,
		Percent: j.percent,
		Error:   j.errMsg,
		Result:  j.result,
	}
}

// JobManager owns the background upload jobs. Finished jobs linger for a
// while so a slow poller still sees the outcome, then get pruned.
type JobManager struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

const jobRetention = time.Hour

func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]*Job)}
}

// Start runs fn on its own goroutine and returns the job immediately. fn
// reports progress through emit; its return value settles the job.
func (m *JobManager) Start(fn func(emit func(Message)) (*AnalysisResult, error)) *Job {
	j := &Job{ID: uuid.New().String(), status: "running"}

	m.mu.Lock()
	m.prune()
	m.jobs[j.ID] = j
	m.mu.Unlock()

	go func() {
		res, err := fn(j.apply)
		j.mu.Lock()
		defer j.mu.Unlock()
		j.doneAt = time.Now()
		if err != nil {
			j.status = "failed"
			j.errMsg = err.Error()
			return
		}
		j.status = "done"
		j.percent = 100
		j.result = res
	}()
	return j
}

func (m *JobManager) Get(id string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	return j, ok
}

// prune drops settled jobs older than the retention window. Caller holds mu.
func (m *JobManager) prune() {
	cutoff := time.Now().Add(-jobRetention)
	for id, j := range m.jobs {
		j.mu.Lock()
		expired := !j.doneAt.IsZero() && j.doneAt.Before(cutoff)
		j.mu.Unlock()
		if expired {
			delete(m.jobs, id)
		}
	}
}
