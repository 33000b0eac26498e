package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pocket-planner/internal/model"
	"pocket-planner/internal/service"
)

type medicationRequest struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Dosage     string     `json:"dosage" validate:"max=200"`
	Frequency  string     `json:"frequency" validate:"omitempty,oneof=Daily Weekly Monthly As-needed"`
	StartDate  time.Time  `json:"start_date" validate:"required"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
	Reminder   bool       `json:"reminder"`
	TimeOfDay  []string   `json:"time_of_day" validate:"dive,oneof=morning afternoon evening bedtime"`
	Stock      *int       `json:"stock" validate:"omitempty,min=0"`
	StockAlert *int       `json:"stock_alert" validate:"omitempty,min=0"`
	IsActive   *bool      `json:"is_active"`
}

func (r medicationRequest) toInput() service.MedicationInput {
	slots := make([]model.TimeOfDay, 0, len(r.TimeOfDay))
	for _, s := range r.TimeOfDay {
		slots = append(slots, model.TimeOfDay(s))
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.MedicationInput{
		Name:       r.Name,
		Dosage:     r.Dosage,
		Frequency:  r.Frequency,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Notes:      r.Notes,
		Reminder:   r.Reminder,
		TimeOfDay:  slots,
		Stock:      r.Stock,
		StockAlert: r.StockAlert,
		IsActive:   active,
	}
}

func (a *API) listMedications(ctx *gin.Context) {
	meds, err := a.medications.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, meds)
}

func (a *API) createMedication(ctx *gin.Context) {
	var req medicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	med, err := a.medications.Create(ctx.Request.Context(), req.toInput())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, med)
}

func (a *API) getMedication(ctx *gin.Context) {
	med, err := a.medications.Get(ctx.Request.Context(), ctx.Param("medicationID"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, med)
}

func (a *API) updateMedication(ctx *gin.Context) {
	var req medicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	med, err := a.medications.Update(ctx.Request.Context(), ctx.Param("medicationID"), req.toInput())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, med)
}

func (a *API) deleteMedication(ctx *gin.Context) {
	if err := a.medications.Delete(ctx.Request.Context(), ctx.Param("medicationID")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
