// Package frontend serves the static directory, including generated capture pages, with the
// bundled stats dashboard as a fallback for any file the directory does not provide.
package frontend

import (
	"embed"
	"errors"
	"os"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

var ErrContentRoot = errors.New("failed to open content root")

//go:embed dist/*
var embedFS embed.FS

func AddRoutes(engine *gin.Engine, root string) error {
	if root != "" {
		info, errStat := os.Stat(root)
		if errStat != nil || !info.IsDir() {
			return errors.Join(errStat, ErrContentRoot)
		}

		engine.Use(static.Serve("/", static.LocalFile(root, false)))
	}

	dist, errDist := static.EmbedFolder(embedFS, "dist")
	if errDist != nil {
		return errors.Join(errDist, ErrContentRoot)
	}

	engine.Use(static.Serve("/", dist))

	return nil
}
