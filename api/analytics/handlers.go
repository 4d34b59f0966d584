package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"SellerPulse/api/constants"
	"SellerPulse/api/dash"
	"SellerPulse/api/recon"
	"SellerPulse/internal/pipeline"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

type recalculateRequest struct {
	Filters        recon.FilterState `json:"filters"`
	RebuildContext bool              `json:"rebuild_context"`
}

// RecalculateHandler reruns the filter engine and all dashboards. Requests
// are serialized on the filter worker; when several arrive back to back only
// the newest answer is accepted and older ones come back flagged stale.
func RecalculateHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recalculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		ds, fc, prices := s.state.Snapshot()
		seq := s.filterWorker.NextSeq()
		res, err := s.filterWorker.Submit(r.Context(), seq, ds, fc, prices, req.Filters, req.RebuildContext)
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if !s.state.Accept(res) {
			respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "stale": true})
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": res.Result})
	}
}

// UpdatePricesHandler stores the seller's cost configuration and returns
// dashboards recomputed with it.
func UpdatePricesHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var prices recon.SkuPrices
		if err := json.NewDecoder(r.Body).Decode(&prices); err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := s.state.SetPrices(r.Context(), &prices); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		ds, fc, _ := s.state.Snapshot()
		res := pipeline.RunFullAnalysis(ds, fc, &prices, recon.FilterState{}, false)
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": res})
	}
}

// FilterContextHandler returns the merged order index and the distinct value
// sets that populate the filter controls.
func FilterContextHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, fc, _ := s.state.Snapshot()
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "filter_context": fc})
	}
}

// DrilldownHandler aggregates one SKU across the full dataset, ignoring
// whatever filters are active.
func DrilldownHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := mux.Vars(r)["sku"]
		if sku == "" {
			respondError(w, http.StatusBadRequest, "sku required")
			return
		}
		ds, _, prices := s.state.Snapshot()
		d := dash.CalculateSkuDrilldown(sku, ds, prices)
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "drilldown": d})
	}
}

// DeleteFileHandler drops one upload slot and rebuilds everything from the
// remaining data.
func DeleteFileHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := recon.FileType(mux.Vars(r)["type"])
		if !recon.ValidFileType(t) {
			respondError(w, http.StatusBadRequest, constants.ErrUnknownFileType)
			return
		}
		ds, err := s.state.Update(r.Context(), func(cur *recon.FileDataSet) (*recon.FileDataSet, error) {
			return cur.WithoutSlot(t), nil
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		_, fc, prices := s.state.Snapshot()
		res := pipeline.RunFullAnalysis(ds, fc, prices, recon.FilterState{}, true)
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": res})
	}
}

// DeleteAllHandler wipes the dataset, prices and view mode.
func DeleteAllHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.state.ClearAll(r.Context()); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func ViewModeHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "view_mode": s.state.ViewMode()})
	}
}

func SetViewModeHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ViewMode string `json:"view_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ViewMode == "" {
			respondError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := s.state.SetViewMode(r.Context(), req.ViewMode); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "view_mode": req.ViewMode})
	}
}
