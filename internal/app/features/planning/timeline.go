// internal/app/features/planning/timeline.go
package planning

import (
	"context"
	"net/http"
	"strings"
	"time"

	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
)

// HandleSetTimeline processes PUT /planning/{id}/timeline.
func (h *Handler) HandleSetTimeline(w http.ResponseWriter, r *http.Request) {
	var req timelineRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Fail(w, h.Log, apperr.InvalidMsg(res.First()))
		return
	}

	tl, err := parseTimeline(req)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	record, err := h.loadRecord(ctx, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	record.Progress.TimelineSet = progressMark(ctx)
	err = planningstore.New(h.DB).SetTimeline(ctx, record.ID, tl, record.Progress.TimelineSet, record.DeriveStatus())
	if err != nil {
		h.auditEvent(ctx, r, record.ID, "timeline_set", stageErr(err), nil)
		httpjson.Fail(w, h.Log, stageErr(err))
		return
	}

	h.auditEvent(ctx, r, record.ID, "timeline_set", nil, nil)
	httpjson.OK(w, "timeline saved", map[string]any{"timeline": tl})
}

func parseTimeline(req timelineRequest) (models.PlanningTimeline, error) {
	tl := models.PlanningTimeline{
		TotalEstimatedHours: req.TotalEstimatedHours,
		Remarks:             inputval.Sanitize(req.Remarks),
	}
	if tl.TotalEstimatedHours < 0 {
		return models.PlanningTimeline{}, apperr.Invalid("totalEstimatedHours must not be negative")
	}

	parse := func(raw, field string) (*time.Time, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, apperr.Invalid("%s must be a valid RFC3339 instant", field)
		}
		u := t.UTC()
		return &u, nil
	}

	var err error
	if tl.StartDate, err = parse(req.StartDate, "startDate"); err != nil {
		return models.PlanningTimeline{}, err
	}
	if tl.EndDate, err = parse(req.EndDate, "endDate"); err != nil {
		return models.PlanningTimeline{}, err
	}
	if tl.StartDate != nil && tl.EndDate != nil && tl.EndDate.Before(*tl.StartDate) {
		return models.PlanningTimeline{}, apperr.Invalid("endDate must not precede startDate")
	}
	return tl, nil
}
