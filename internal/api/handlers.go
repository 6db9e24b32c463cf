package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/piwi3910/floorplan/internal/cache"
	"github.com/piwi3910/floorplan/internal/engine"
	"github.com/piwi3910/floorplan/internal/model"
)

// Quantity is the response of /api/quantity.
type Quantity struct {
	Quantity      float64             `json:"quantity"`
	Units         int                 `json:"units"`
	UnitName      string              `json:"unit_name"`
	Mode          engine.QuantityMode `json:"mode"`
	UsableAreaM2  float64             `json:"usable_area_m2"`
	EstimatedCost *float64            `json:"estimated_cost,omitempty"`
}

// ScenarioSummary is one row of /api/compare.
type ScenarioSummary struct {
	Name         string  `json:"name"`
	Error        string  `json:"error,omitempty"`
	PieceCount   int     `json:"piece_count"`
	NeededCount  int     `json:"needed_count"`
	CutCount     int     `json:"cut_count"`
	NeededAreaM2 float64 `json:"needed_area_m2"`
	WasteAreaM2  float64 `json:"waste_area_m2"`
	WastePercent float64 `json:"waste_percent"`
	TotalCost    float64 `json:"total_cost"`
}

// EstimateRequest is the body of /api/estimate.
type EstimateRequest struct {
	Room               model.Room `json:"room"`
	UnitLengthMm       float64    `json:"unit_length_mm"`
	UnitWidthMm        float64    `json:"unit_width_mm"`
	WasteFactorPercent float64    `json:"waste_factor_percent"`
	PricePerUnit       float64    `json:"price_per_unit"`
}

// SkirtingRequest is the body of /api/skirting.
type SkirtingRequest struct {
	Room               model.Room `json:"room"`
	OpeningsMm         float64    `json:"openings_mm"`
	BoardLengthMm      float64    `json:"board_length_mm"`
	WasteFactorPercent float64    `json:"waste_factor_percent"`
}

// readBody reads at most maxBodyBytes of the request body.
func (r *Router) readBody(w http.ResponseWriter, req *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, r.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return body, true
}

// decodeRequest reads and validates a layout request.
func (r *Router) decodeRequest(w http.ResponseWriter, req *http.Request) (engine.Request, []byte, bool) {
	body, ok := r.readBody(w, req)
	if !ok {
		return engine.Request{}, nil, false
	}
	var lr engine.Request
	if err := json.Unmarshal(body, &lr); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return engine.Request{}, nil, false
	}
	if err := lr.Room.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return engine.Request{}, nil, false
	}
	return lr, body, true
}

func (r *Router) layout(w http.ResponseWriter, req *http.Request) {
	lr, body, ok := r.decodeRequest(w, req)
	if !ok {
		return
	}

	ctx := req.Context()
	key := cache.Key("layout", body)
	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache get failed", "err", err)
	} else if hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	res, err := engine.Generate(lr)
	if errors.Is(err, engine.ErrTooManyPieces) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		r.logger.Error("layout failed", "err", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(res); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	if err := r.cache.Set(ctx, key, buf.Bytes(), r.ttl); err != nil {
		r.logger.Warn("cache set failed", "err", err)
	}
	r.logger.Debug("layout generated",
		"pieces", len(res.Pieces),
		"needed_m2", res.NeededAreaM2,
		"waste_m2", res.WasteAreaM2)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (r *Router) quantity(w http.ResponseWriter, req *http.Request) {
	lr, _, ok := r.decodeRequest(w, req)
	if !ok {
		return
	}
	if engine.KindFor(lr.Material) != engine.KindContinuous {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("material %q is not measured by quantity", lr.Material.Key))
		return
	}

	calc := engine.ContinuousCalculator{}
	qty, unit, mode := calc.Quantity(lr)
	out := Quantity{
		Quantity:     qty,
		Units:        model.PurchaseSuggestion{QuantityValue: qty}.QuantityNeeded(),
		UnitName:     unit,
		Mode:         mode,
		UsableAreaM2: lr.Room.UsableAreaM2(),
	}
	if lr.Material.PricePerUnit != nil {
		cost := qty * *lr.Material.PricePerUnit
		out.EstimatedCost = &cost
	}
	respondJSON(w, http.StatusOK, out)
}

func (r *Router) compare(w http.ResponseWriter, req *http.Request) {
	lr, _, ok := r.decodeRequest(w, req)
	if !ok {
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(lr))
	out := make([]ScenarioSummary, len(results))
	for i, res := range results {
		out[i] = ScenarioSummary{
			Name:         res.Scenario.Name,
			PieceCount:   res.PieceCount,
			NeededCount:  res.NeededCount,
			CutCount:     res.CutCount,
			NeededAreaM2: res.NeededAreaM2,
			WasteAreaM2:  res.WasteAreaM2,
			WastePercent: res.WastePercent,
			TotalCost:    res.TotalCost,
		}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (r *Router) estimate(w http.ResponseWriter, req *http.Request) {
	body, ok := r.readBody(w, req)
	if !ok {
		return
	}
	var er EstimateRequest
	if err := json.Unmarshal(body, &er); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := er.Room.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, model.CalculatePurchaseEstimate(
		er.Room, er.UnitLengthMm, er.UnitWidthMm, er.WasteFactorPercent, er.PricePerUnit))
}

func (r *Router) skirting(w http.ResponseWriter, req *http.Request) {
	body, ok := r.readBody(w, req)
	if !ok {
		return
	}
	var sr SkirtingRequest
	if err := json.Unmarshal(body, &sr); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := sr.Room.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, model.CalculateSkirting(
		sr.Room, sr.OpeningsMm, sr.BoardLengthMm, sr.WasteFactorPercent))
}
