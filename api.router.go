package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupRoutes enforces the api routes.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public.Chain(api.Index))
	router.GET("/status", m.public.Chain(api.Status))

	router.POST("/v1/books", m.public.Chain(api.CreateBook))
	router.GET("/v1/books", m.public.Chain(api.ListBooks))
	router.GET("/v1/books/:id", m.public.Chain(api.GetOneBook))
	router.PATCH("/v1/books/:id", m.public.Chain(api.UpdateBook))
	router.DELETE("/v1/books/:id", m.public.Chain(api.DeleteOneBook))
	router.PUT("/v1/books/:id/cover", m.public.Chain(api.UploadBookCover))

	router.POST("/v1/authors", m.public.Chain(api.CreateAuthor))
	router.GET("/v1/authors", m.public.Chain(api.ListAuthors))
	router.GET("/v1/authors/:id", m.public.Chain(api.GetOneAuthor))
	router.PATCH("/v1/authors/:id", m.public.Chain(api.UpdateAuthor))
	router.DELETE("/v1/authors/:id", m.public.Chain(api.DeleteOneAuthor))

	router.POST("/v1/genres", m.public.Chain(api.CreateGenre))
	router.GET("/v1/genres", m.public.Chain(api.ListGenres))
	router.GET("/v1/genres/:id", m.public.Chain(api.GetOneGenre))
	router.PATCH("/v1/genres/:id", m.public.Chain(api.UpdateGenre))
	router.DELETE("/v1/genres/:id", m.public.Chain(api.DeleteOneGenre))

	router.POST("/v1/publishers", m.public.Chain(api.CreatePublisher))
	router.GET("/v1/publishers", m.public.Chain(api.ListPublishers))
	router.GET("/v1/publishers/:id", m.public.Chain(api.GetOnePublisher))
	router.PATCH("/v1/publishers/:id", m.public.Chain(api.UpdatePublisher))
	router.DELETE("/v1/publishers/:id", m.public.Chain(api.DeleteOnePublisher))

	router.GET("/ops/configs", m.ops.Chain(api.GetConfigs))
	router.GET("/ops/stats", m.ops.Chain(api.GetStatistics))
	router.GET("/ops/maintenance", m.ops.Chain(api.Maintenance))
	return router
}
