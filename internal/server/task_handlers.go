package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pocket-planner/internal/model"
	"pocket-planner/internal/query"
	"pocket-planner/internal/service"
)

type taskRequest struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Priority   *int       `json:"priority" validate:"omitempty,min=0,max=2"`
	Tags       []string   `json:"tags"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	CategoryID *string    `json:"category_id"`
	SortOrder  *int       `json:"sort_order" validate:"omitempty,min=0"`
}

type reorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

func (r taskRequest) toInput() service.TaskInput {
	priority := model.PriorityNormal
	if r.Priority != nil {
		priority = model.Priority(*r.Priority)
	}
	return service.TaskInput{
		Title:      r.Title,
		Priority:   priority,
		Tags:       r.Tags,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		CategoryID: r.CategoryID,
		SortOrder:  r.SortOrder,
	}
}

// listTasks returns the snapshot in manual order, optionally narrowed by
// ?category= and ?date=YYYY-MM-DD (local calendar day).
func (a *API) listTasks(ctx *gin.Context) {
	items, err := a.tasks.ListTasks(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	if categoryID := ctx.Query("category"); categoryID != "" {
		items = query.FilterByCategory(items, &categoryID)
	}
	if rawDate := ctx.Query("date"); rawDate != "" {
		date, err := time.ParseInLocation("2006-01-02", rawDate, time.Local)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		items = query.SortByStartTime(query.FilterByDate(items, date))
	} else {
		items = query.SortByOrder(items)
	}

	ctx.JSON(http.StatusOK, items)
}

// taskTimeline renders the 24-slot day view: tasks for ?date= grouped by
// the hour of their start time.
func (a *API) taskTimeline(ctx *gin.Context) {
	rawDate := ctx.Query("date")
	if rawDate == "" {
		rawDate = time.Now().Format("2006-01-02")
	}
	date, err := time.ParseInLocation("2006-01-02", rawDate, time.Local)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	items, err := a.tasks.ListTasks(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, query.GroupByHour(query.FilterByDate(items, date)))
}

func (a *API) createTask(ctx *gin.Context) {
	var req taskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	item, err := a.tasks.CreateTask(ctx.Request.Context(), req.toInput())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

func (a *API) getTask(ctx *gin.Context) {
	item, err := a.tasks.GetTask(ctx.Request.Context(), ctx.Param("taskID"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (a *API) updateTask(ctx *gin.Context) {
	var req taskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	item, err := a.tasks.UpdateTask(ctx.Request.Context(), ctx.Param("taskID"), req.toInput())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (a *API) deleteTask(ctx *gin.Context) {
	if err := a.tasks.DeleteTask(ctx.Request.Context(), ctx.Param("taskID")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (a *API) toggleTask(ctx *gin.Context) {
	item, err := a.tasks.ToggleCompleted(ctx.Request.Context(), ctx.Param("taskID"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (a *API) reorderTasks(ctx *gin.Context) {
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	if err := a.tasks.Reorder(ctx.Request.Context(), req.IDs); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (a *API) addTag(ctx *gin.Context) {
	item, err := a.tasks.AddTag(ctx.Request.Context(), ctx.Param("taskID"), ctx.Param("tag"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (a *API) removeTag(ctx *gin.Context) {
	item, err := a.tasks.RemoveTag(ctx.Request.Context(), ctx.Param("taskID"), ctx.Param("tag"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}
