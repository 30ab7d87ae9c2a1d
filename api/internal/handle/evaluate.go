package handle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/evaluate"
)

const maxBodyBytes = 1 << 20

// EvaluateRequest uses pointers so that absent fields can be told from empty strings.
type EvaluateRequest struct {
	BusinessName         *string `json:"businessName"`
	Description          *string `json:"description"`
	TargetMarket         *string `json:"targetMarket"`
	RevenueModel         *string `json:"revenueModel"`
	CostStructure        *string `json:"costStructure"`
	DistributionChannels *string `json:"distributionChannels"`
	Industry             *string `json:"industry"`
}

type EvaluateData struct {
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	// Analysis is the JSON-encoded analysis.Result.
	Analysis string `json:"analysis"`
}

type EvaluateResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    EvaluateData `json:"data"`
}

func (req EvaluateRequest) Idea() (analysis.BusinessIdea, error) {
	var missing []string
	get := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}
	idea := analysis.BusinessIdea{
		BusinessName:         get("businessName", req.BusinessName),
		Description:          get("description", req.Description),
		TargetMarket:         get("targetMarket", req.TargetMarket),
		RevenueModel:         get("revenueModel", req.RevenueModel),
		CostStructure:        get("costStructure", req.CostStructure),
		DistributionChannels: get("distributionChannels", req.DistributionChannels),
		Industry:             get("industry", req.Industry),
	}
	if len(missing) > 0 {
		return analysis.BusinessIdea{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return idea, nil
}

func decodeIdea(r *http.Request) (analysis.BusinessIdea, error) {
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return analysis.BusinessIdea{}, fmt.Errorf("read body: %w", err)
	}
	if len(blob) > maxBodyBytes {
		return analysis.BusinessIdea{}, errors.New("request body too large")
	}
	if len(bytes.TrimSpace(blob)) == 0 || bytes.Equal(bytes.TrimSpace(blob), []byte("null")) {
		return analysis.BusinessIdea{}, errors.New("request body must be a JSON object")
	}
	var req EvaluateRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		return analysis.BusinessIdea{}, fmt.Errorf("bad json: %w", err)
	}
	return req.Idea()
}

func (h *Handle) EvaluateIdea(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	idea, err := decodeIdea(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, src, err := h.evaluate(r, idea)
	if err != nil {
		h.log.WithField("business", idea.BusinessName).Errorf("evaluate idea: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Error evaluating business idea: "+err.Error())
		return
	}
	w.Header().Set("X-Analysis-Source", string(src))
	writeJSON(w, http.StatusOK, resp)
}

// evaluate converts a panic in the scorers into an error for the 500 path.
func (h *Handle) evaluate(r *http.Request, idea analysis.BusinessIdea) (resp EvaluateResponse, src evaluate.Source, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()

	res, src := h.eval.Evaluate(r.Context(), idea)
	blob, err := json.Marshal(res)
	if err != nil {
		return EvaluateResponse{}, src, err
	}
	h.log.WithFields(logrus.Fields{
		"business": idea.BusinessName,
		"source":   string(src),
		"score":    res.ViabilityScore,
	}).Info("idea evaluated")

	return EvaluateResponse{
		Status:  "success",
		Message: "Business idea evaluated successfully",
		Data: EvaluateData{
			BusinessName: idea.BusinessName,
			Industry:     idea.Industry,
			Analysis:     string(blob),
		},
	}, src, nil
}
