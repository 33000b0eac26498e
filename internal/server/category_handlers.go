package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color"`
}

func (a *API) listCategories(ctx *gin.Context) {
	categories, err := a.categories.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

func (a *API) createCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	category, err := a.categories.Create(ctx.Request.Context(), req.Name, req.Color)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

func (a *API) getCategory(ctx *gin.Context) {
	category, err := a.categories.Get(ctx.Request.Context(), ctx.Param("categoryID"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

func (a *API) updateCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	category, err := a.categories.Update(ctx.Request.Context(), ctx.Param("categoryID"), req.Name, req.Color)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// deleteCategory removes the label only: its tasks are detached, never
// deleted with it.
func (a *API) deleteCategory(ctx *gin.Context) {
	if err := a.categories.Delete(ctx.Request.Context(), ctx.Param("categoryID")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (a *API) categoryItems(ctx *gin.Context) {
	items, err := a.categories.Items(ctx.Request.Context(), ctx.Param("categoryID"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}
