package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/core/services"
	"github.com/jakechorley/ward-allocator/pkg/db"
	"github.com/jakechorley/ward-allocator/pkg/utils"
)

// PatientHandler serves the patient list endpoints
type PatientHandler struct {
	store  db.PatientStore
	logger *zap.Logger
}

func NewPatientHandler(store db.PatientStore, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{
		store:  store,
		logger: logger,
	}
}

// ListPatients returns every stored patient in insertion order
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := services.ListPatients(c.Request.Context(), h.store, h.logger)
	if err != nil {
		h.respondError(c, err, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// CreatePatient adds a patient with a newly generated ID
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patient, err := services.AddPatient(c.Request.Context(), h.store, h.logger, req.toInput())
	if err != nil {
		h.respondError(c, err, "Failed to add patient")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Patient added successfully",
		"patient": patient,
	})
}

// UpdatePatient changes the given fields of an existing patient
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patient, err := services.UpdatePatient(c.Request.Context(), h.store, h.logger, c.Param("id"), req.toUpdate())
	if err != nil {
		h.respondError(c, err, "Failed to update patient")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Patient updated successfully",
		"patient": patient,
	})
}

// DeletePatient removes a single patient
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := services.DeletePatient(c.Request.Context(), h.store, h.logger, c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete patient")
		return
	}

	utils.MessageResponse(c, "Patient deleted successfully")
}

// ClearPatients removes every stored patient
func (h *PatientHandler) ClearPatients(c *gin.Context) {
	if err := services.ClearPatients(c.Request.Context(), h.store, h.logger); err != nil {
		h.respondError(c, err, "Failed to clear patients")
		return
	}

	utils.MessageResponse(c, "All patient data cleared")
}

// AllocationHandler serves the allocation endpoint
type AllocationHandler struct {
	reader       db.PatientReader
	defaultPools allocator.ResourcePools
	logger       *zap.Logger
}

func NewAllocationHandler(reader db.PatientReader, defaultPools allocator.ResourcePools, logger *zap.Logger) *AllocationHandler {
	return &AllocationHandler{
		reader:       reader,
		defaultPools: defaultPools,
		logger:       logger,
	}
}

// Allocate runs one allocation over the stored patients.
// An empty body uses the configured pools.
func (h *AllocationHandler) Allocate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req allocateRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := services.AllocateResources(c.Request.Context(), h.reader, h.logger, req.poolsOrDefault(h.defaultPools))
	if err != nil {
		respondError(c, h.logger, err, "Failed to allocate resources")
		return
	}

	utils.SuccessResponse(c, newAllocationResponse(result))
}

func (h *PatientHandler) respondError(c *gin.Context, err error, fallback string) {
	respondError(c, h.logger, err, fallback)
}

// respondError maps service errors onto HTTP status codes.
// Unexpected errors are logged and reported with the fallback message only.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, db.ErrPatientNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidPatient), errors.Is(err, allocator.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}
