package httphelper

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
)

// Decoder is a package global because it caches
// meta-data about structs, and an instance can be shared safely.
var Decoder = newDecoder() //nolint:gochecknoglobals

func newDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return decoder
}

// BindRequest reads T from the query string and then overlays any fields present in the
// request body. Body values win; query parameters fill whatever the body left out.
// On failure the error is already set on the context.
func BindRequest[T any](ctx *gin.Context) (T, bool) { //nolint:ireturn
	var value T
	if !BindQuery(ctx, &value) {
		return value, false
	}

	if ctx.Request.Method == http.MethodGet {
		return value, true
	}

	if errBind := ctx.ShouldBind(&value); errBind != nil && !errors.Is(errBind, io.EOF) {
		SetError(ctx, NewAPIError(http.StatusBadRequest, errors.Join(errBind, ErrBadRequest)))

		return value, false
	}

	return value, true
}

func BindQuery(ctx *gin.Context, target any) bool {
	if errBind := Decoder.Decode(target, ctx.Request.URL.Query()); errBind != nil {
		SetError(ctx, NewAPIError(http.StatusBadRequest, errors.Join(errBind, ErrBadRequest)))

		return false
	}

	return true
}

// NewHTTPClient allocates a preconfigured *http.Client.
func NewHTTPClient() *http.Client {
	c := &http.Client{
		Timeout: time.Second * 10,
	}

	return c
}

func NewServer(listenAddr string, handler http.Handler) *http.Server {
	httpServer := &http.Server{
		Addr:           listenAddr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return httpServer
}
