package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"SellerPulse/api/constants"
	"SellerPulse/internal/pipeline"
)

// UploadStreamHandler pushes job progress over SSE so the client does not
// have to poll large uploads. The stream closes once the job settles or the
// client goes away.
func UploadStreamHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, ok := s.jobs.Get(mux.Vars(r)["job"])
		if !ok {
			respondError(w, http.StatusNotFound, "unknown job")
			return
		}

		flusher, okFlush := w.(http.Flusher)
		if !okFlush {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set(constants.ContentTypeText, "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		send := func(view pipeline.JobView) {
			payload, _ := json.Marshal(view)
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
		last := job.Snapshot()
		send(last)

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				view := job.Snapshot()
				if view != last {
					send(view)
					last = view
				}
				if view.Status == "done" || view.Status == "failed" {
					return
				}
			}
		}
	}
}
