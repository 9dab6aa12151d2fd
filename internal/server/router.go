package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"shop-reconciliation/internal/usecase"
)

// NewRouter builds the gin engine with logging, request ids and the two
// reconciliation routes. templatesGlob points at the HTML templates, relative
// to the process working directory.
func NewRouter(logger *slog.Logger, uc *usecase.ReconciliationUseCase, templatesGlob string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))
	r.LoadHTMLGlob(templatesGlob)

	h := NewHandler(uc, logger)
	r.GET("/", h.Index)
	r.POST("/", h.Reconcile)

	return r
}
