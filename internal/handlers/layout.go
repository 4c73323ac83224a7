package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/services"
)

// LayoutHandler exposes the per-user layout preference API: one GET/PUT
// pair per domain (display columns, app list, model list) plus the
// composite app index. All routes sit behind the staff middleware.
type LayoutHandler struct {
	listDisplayService services.ListDisplayService
	appListService     services.AppListService
	modelListService   services.ModelListService
}

func NewLayoutHandler(
	listDisplayService services.ListDisplayService,
	appListService services.AppListService,
	modelListService services.ModelListService,
) *LayoutHandler {
	return &LayoutHandler{
		listDisplayService: listDisplayService,
		appListService:     appListService,
		modelListService:   modelListService,
	}
}

func (lh *LayoutHandler) GetListDisplay(c *gin.Context) {
	fields, err := lh.listDisplayService.GetListFields(c.Request.Context(), c.Param("app_label"), c.Param("model_name"))
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, fields)
}

func (lh *LayoutHandler) UpdateListDisplay(c *gin.Context) {
	data, ok := bindDataBody(c)
	if !ok {
		return
	}
	fields, err := lh.listDisplayService.UpdateListFields(c.Request.Context(), c.Param("app_label"), c.Param("model_name"), data)
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, fields)
}

func (lh *LayoutHandler) GetAppList(c *gin.Context) {
	apps, err := lh.appListService.GetAppList(c.Request.Context())
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, apps)
}

func (lh *LayoutHandler) UpdateAppList(c *gin.Context) {
	data, ok := bindDataBody(c)
	if !ok {
		return
	}
	apps, err := lh.appListService.UpdateAppList(c.Request.Context(), data)
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, apps)
}

func (lh *LayoutHandler) GetModelList(c *gin.Context) {
	models, err := lh.modelListService.GetModelList(c.Request.Context(), c.Param("app_label"))
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, models)
}

func (lh *LayoutHandler) UpdateModelList(c *gin.Context) {
	data, ok := bindDataBody(c)
	if !ok {
		return
	}
	models, err := lh.modelListService.UpdateModelList(c.Request.Context(), c.Param("app_label"), data)
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, models)
}

func (lh *LayoutHandler) GetAppIndex(c *gin.Context) {
	index, err := lh.appListService.AppIndex(c.Request.Context())
	if err != nil {
		respondLayoutError(c, err)
		return
	}
	RespondData(c, index)
}

// bindDataBody decodes the {"data": [...]} update envelope. A body that is
// not JSON, or lacks the data key, is a client error; the entries inside
// data are validated downstream, where malformed ones are dropped.
func bindDataBody(c *gin.Context) (any, bool) {
	var body struct {
		Data any `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, errInvalidJSON)
		return nil, false
	}
	if body.Data == nil {
		RespondError(c, http.StatusBadRequest, errInvalidJSON)
		return nil, false
	}
	return body.Data, true
}

func respondLayoutError(c *gin.Context, err error) {
	if errors.Is(err, adminsite.ErrModelNotRegistered) || errors.Is(err, adminsite.ErrAppNotRegistered) {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondError(c, http.StatusInternalServerError, err)
}
