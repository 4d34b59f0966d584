package analytics

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"SellerPulse/api/constants"
	"SellerPulse/api/ingest"
	"SellerPulse/api/recon"
	"SellerPulse/internal/config"
	"SellerPulse/internal/pipeline"
)

type uploadedFile struct {
	name string
	data []byte
}

// UploadHandler accepts one or more workbooks for a single file type. Small
// batches are processed inline and answered with fresh dashboards; batches
// containing a large file go through the background worker and the client
// polls the job endpoint.
func UploadHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrFailedToParseMultipartForm)
			return
		}
		t := recon.FileType(r.FormValue("type"))
		if !recon.ValidFileType(t) {
			respondError(w, http.StatusBadRequest, constants.ErrUnknownFileType)
			return
		}

		var files []uploadedFile
		large := false
		for _, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				ext := strings.ToLower(filepath.Ext(fh.Filename))
				if ext != ".xlsx" && ext != ".xls" {
					respondError(w, http.StatusBadRequest, constants.ErrUnsupportedFileType)
					return
				}
				f, err := fh.Open()
				if err != nil {
					respondError(w, http.StatusBadRequest, "failed to read uploaded file: "+fh.Filename)
					return
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					respondError(w, http.StatusBadRequest, "failed to read uploaded file: "+fh.Filename)
					return
				}
				if int64(len(data)) > config.LargeFileBytes {
					large = true
				}
				files = append(files, uploadedFile{name: fh.Filename, data: data})
			}
		}
		if len(files) == 0 {
			respondError(w, http.StatusBadRequest, "no file provided")
			return
		}

		if large {
			job := s.jobs.Start(func(emit func(pipeline.Message)) (*pipeline.AnalysisResult, error) {
				res, _, err := s.ingestBatch(context.Background(), t, files, emit)
				return res, err
			})
			respondJSON(w, http.StatusAccepted, map[string]interface{}{"success": true, "job_id": job.ID})
			return
		}

		res, batchIDs, err := s.ingestBatch(r.Context(), t, files, nil)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"batch_ids": batchIDs,
			"result":    res,
		})
	}
}

// UploadStatusHandler is the poll endpoint for background uploads.
func UploadStatusHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["job"]
		job, ok := s.jobs.Get(id)
		if !ok {
			respondError(w, http.StatusNotFound, "unknown job")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "job": job.Snapshot()})
	}
}

// ingestBatch parses every workbook, folds them into the dataset in upload
// order and returns dashboards computed on the result. A single file takes
// the streamlined path; multi-file batches decode concurrently before the
// serial fold.
func (s *Service) ingestBatch(ctx context.Context, t recon.FileType, files []uploadedFile, emit func(pipeline.Message)) (*pipeline.AnalysisResult, []string, error) {
	if emit == nil {
		emit = func(pipeline.Message) {}
	}

	batchIDs := make([]string, 0, len(files))

	if len(files) == 1 {
		f := files[0]
		var decoded *ingest.DecodedFile
		_, err := s.state.Update(ctx, func(cur *recon.FileDataSet) (*recon.FileDataSet, error) {
			next, d, err := pipeline.ProcessFile(f.data, f.name, t, cur, emit)
			if err != nil {
				return nil, err
			}
			decoded = d
			return next, nil
		})
		if err != nil {
			return nil, nil, err
		}
		id := uuid.New().String()
		batchIDs = append(batchIDs, id)
		recordUpload(s.auditDB, id, string(t), f.name, decoded.Rows())
	} else {
		emit(pipeline.Message{Kind: pipeline.KindProgress, Percent: 10, Stage: "Reading files"})
		decoded := make([]*ingest.DecodedFile, len(files))
		g, gctx := errgroup.WithContext(ctx)
		for i := range files {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				wb, err := ingest.OpenWorkbook(files[i].data, files[i].name)
				if err != nil {
					return err
				}
				d, err := ingest.DecodeWorkbook(wb, t)
				if err != nil {
					return err
				}
				decoded[i] = d
				return nil
			})
		}
		emit(pipeline.Message{Kind: pipeline.KindProgress, Percent: 30, Stage: "Parsing workbooks"})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}

		emit(pipeline.Message{Kind: pipeline.KindProgress, Percent: 60, Stage: "Merging data"})
		_, err := s.state.Update(ctx, func(cur *recon.FileDataSet) (*recon.FileDataSet, error) {
			next := cur
			for _, d := range decoded {
				switch t {
				case recon.FileTypePayments:
					next = next.WithPayments(d.Payments, d.AdsCost)
				case recon.FileTypeOrders:
					next = next.WithOrders(d.Orders)
				case recon.FileTypeReturns:
					next = next.WithReturns(d.Returns)
				}
			}
			return next, nil
		})
		if err != nil {
			return nil, nil, err
		}
		for i, d := range decoded {
			id := uuid.New().String()
			batchIDs = append(batchIDs, id)
			recordUpload(s.auditDB, id, string(t), files[i].name, d.Rows())
		}
	}

	emit(pipeline.Message{Kind: pipeline.KindProgress, Percent: 75, Stage: "Calculating analytics"})
	ds, fc, prices := s.state.Snapshot()
	res := pipeline.RunFullAnalysis(ds, fc, prices, recon.FilterState{}, true)
	return res, batchIDs, nil
}
