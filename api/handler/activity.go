package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/studyplanner/api/transport"
	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/pkg/httpcontext"
	activityUC "github.com/fastygo/studyplanner/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	uc *activityUC.UseCase
}

func NewActivityHandler(uc *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List activities
// @Tags activities
// @Router /api/v1/activities [get]
func (h *ActivityHandler) GetActivities(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activities, err := h.uc.ListActivities(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(activities, transport.ListMeta{Count: len(activities)}))
}

// @Summary Get activity
// @Tags activities
// @Router /api/v1/activities/{id} [get]
func (h *ActivityHandler) GetActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.activityID(ctx)
	if !ok {
		return
	}
	activity, err := h.uc.GetActivity(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activity)
}

// @Summary Create activity
// @Tags activities
// @Router /api/v1/activities [post]
func (h *ActivityHandler) CreateActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req, ok := h.parseActivity(stdCtx, ctx)
	if !ok {
		return
	}
	created, err := h.uc.CreateActivity(stdCtx, req.Draft())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update activity
// @Tags activities
// @Router /api/v1/activities/{id} [put]
func (h *ActivityHandler) UpdateActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.activityID(ctx)
	if !ok {
		return
	}
	req, ok := h.parseActivity(stdCtx, ctx)
	if !ok {
		return
	}
	updated, err := h.uc.UpdateActivity(stdCtx, id, req.Draft())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete activity
// @Tags activities
// @Router /api/v1/activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.activityID(ctx)
	if !ok {
		return
	}
	if err := h.uc.DeleteActivity(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

func (h *ActivityHandler) parseActivity(stdCtx context.Context, ctx *fasthttp.RequestCtx) (transport.ActivityRequest, bool) {
	var req transport.ActivityRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(stdCtx, ctx, domain.ErrInvalidPayload)
		return req, false
	}
	return req, true
}

func (h *ActivityHandler) activityID(ctx *fasthttp.RequestCtx) (domain.ID, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing activity id", nil))
		return "", false
	}
	return domain.ID(id), true
}
