package capture

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/httphelper"
)

type captureHandler struct {
	captures *Captures
}

// StartRequest holds the capture fields. They may arrive in a JSON or form body, or as query parameters.
type StartRequest struct {
	Gang1  string `form:"gang1"  json:"gang1"  schema:"gang1"  url:"gang1,omitempty"`
	Gang2  string `form:"gang2"  json:"gang2"  schema:"gang2"  url:"gang2,omitempty"`
	Start  string `form:"start"  json:"start"  schema:"start"  url:"start,omitempty"`
	Weapon string `form:"weapon" json:"weapon" schema:"weapon" url:"weapon,omitempty"`
}

type WinnerRequest struct {
	Winner string `form:"winner" json:"winner" schema:"winner" url:"winner,omitempty"`
}

type StartResponse struct {
	OK      bool      `json:"ok"`
	Gang1   gang.Gang `json:"gang1"`
	Gang2   gang.Gang `json:"gang2"`
	Start   string    `json:"start"`
	Weapon  string    `json:"weapon"`
	SiteURL string    `json:"siteUrl"`
}

type WinnerResponse struct {
	OK      bool      `json:"ok"`
	Winner  gang.Gang `json:"winner"`
	SiteURL string    `json:"siteUrl"`
}

// NewCaptureHandler registers the capture routes. The state changing routes are only
// registered when controlEnabled is set.
func NewCaptureHandler(engine *gin.Engine, captures *Captures, controlEnabled bool) {
	handler := captureHandler{captures: captures}

	engine.GET("/capture", handler.onCurrent())

	if controlEnabled {
		engine.POST("/capture", handler.onStart())
		engine.GET("/capture-start", handler.onStart())
		engine.POST("/winner", handler.onWinner())
		engine.GET("/winner", handler.onWinner())
	}
}

func (h captureHandler) onCurrent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, h.captures.Current())
	}
}

func (h captureHandler) onStart() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req, ok := httphelper.BindRequest[StartRequest](ctx)
		if !ok {
			return
		}

		result, errStart := h.captures.Start(ctx, req.Gang1, req.Gang2, req.Start, req.Weapon)
		if errStart != nil {
			setError(ctx, errStart)

			return
		}

		ctx.JSON(http.StatusOK, StartResponse{
			OK:      true,
			Gang1:   result.State.Gang1,
			Gang2:   result.State.Gang2,
			Start:   result.State.Start,
			Weapon:  result.State.Weapon,
			SiteURL: result.SiteURL,
		})
	}
}

func (h captureHandler) onWinner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req, ok := httphelper.BindRequest[WinnerRequest](ctx)
		if !ok {
			return
		}

		result, errWinner := h.captures.DeclareWinner(ctx, req.Winner)
		if errWinner != nil {
			setError(ctx, errWinner)

			return
		}

		ctx.JSON(http.StatusOK, WinnerResponse{
			OK:      true,
			Winner:  result.State.Winner,
			SiteURL: result.SiteURL,
		})
	}
}

func setError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNoActiveCapture):
		httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusBadRequest, err))
	default:
		httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError, err))
	}
}
