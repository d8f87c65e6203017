package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
	"github.com/SscSPs/cuadre_caja_app/internal/middleware"
)

// cashBoxHandler serves one kind of cash box; petty and general share the routes.
type cashBoxHandler struct {
	kind                  domain.CashBoxKind
	reconciliationService portssvc.ReconciliationSvcFacade
	cancellationService   portssvc.CancellationSvcFacade
}

func newCashBoxHandler(kind domain.CashBoxKind, rs portssvc.ReconciliationSvcFacade, cs portssvc.CancellationSvcFacade) *cashBoxHandler {
	return &cashBoxHandler{
		kind:                  kind,
		reconciliationService: rs,
		cancellationService:   cs,
	}
}

// registerCashBoxRoutes registers the lifecycle routes of a cash box kind.
// Code generation and cancellation go through codeGuard.
func registerCashBoxRoutes(rg *gin.RouterGroup, kind domain.CashBoxKind, rs portssvc.ReconciliationSvcFacade, cs portssvc.CancellationSvcFacade, codeGuard gin.HandlerFunc) {
	h := newCashBoxHandler(kind, rs, cs)

	rg.POST("", h.openCashBox)
	rg.GET("/:id", h.getCashBox)
	rg.GET("/:id/resumen", h.getSummary)
	rg.POST("/:id/precuadre", h.createPrecuadre)
	rg.DELETE("/:id/precuadre", h.discardPrecuadre)
	rg.POST("/cuadrar/:id", h.submitCuadre)
	rg.POST("/:id/cerrar", h.closeCashBox)
	rg.GET("/:id/codigo-cancelacion", codeGuard, h.generateCancellationCode)
	rg.POST("/:id/cancelar", codeGuard, h.cancelCuadre)
}

// openCashBox godoc
// @Summary Open a cash box
// @Description Opens the petty (caja-chica) or general (caja-general) box of a branch for a business day. SaldoInicial is carried over from the last balanced box.
// @Tags cash-boxes
// @Accept  json
// @Produce  json
// @Param   cashBox body dto.OpenCashBoxRequest true "Branch, day and fixed fund"
// @Success 201 {object} dto.APIResponse{data=domain.CashBox}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "A box is already open for that branch and day"
// @Security BearerAuth
// @Router /caja-chica [post]
// @Router /caja-general [post]
func (h *cashBoxHandler) openCashBox(c *gin.Context) {
	var req dto.OpenCashBoxRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	box, err := h.reconciliationService.OpenCashBox(c.Request.Context(), h.kind, req, actor)
	if err != nil {
		respondError(c, err, "Failed to open cash box")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Cash box opened", box))
}

// getCashBox godoc
// @Summary Get a cash box
// @Tags cash-boxes
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 200 {object} dto.APIResponse{data=domain.CashBox}
// @Failure 404 {object} dto.APIResponse "Cash box not found"
// @Security BearerAuth
// @Router /caja-chica/{id} [get]
// @Router /caja-general/{id} [get]
func (h *cashBoxHandler) getCashBox(c *gin.Context) {
	box, err := h.reconciliationService.GetCashBox(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve cash box")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("", box))
}

// getSummary godoc
// @Summary Live balance of a cash box
// @Description Totals of the approved entries run through the balance calculator, plus pending counts.
// @Tags cash-boxes
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 200 {object} dto.APIResponse{data=dto.CashBoxSummaryResponse}
// @Failure 404 {object} dto.APIResponse "Cash box not found"
// @Security BearerAuth
// @Router /caja-chica/{id}/resumen [get]
// @Router /caja-general/{id}/resumen [get]
func (h *cashBoxHandler) getSummary(c *gin.Context) {
	summary, err := h.reconciliationService.GetSummary(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute cash box summary")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("", summary))
}

// createPrecuadre godoc
// @Summary Record a precuadre
// @Description Records the counted money and moves the box ABIERTA -> PRECUADRE. Blocked while user cortes are pending.
// @Tags cash-boxes
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Param   precuadre body dto.CreatePrecuadreRequest true "Counted amounts"
// @Success 201 {object} dto.APIResponse{data=domain.Precuadre}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "Wrong state or pending cortes"
// @Security BearerAuth
// @Router /caja-chica/{id}/precuadre [post]
// @Router /caja-general/{id}/precuadre [post]
func (h *cashBoxHandler) createPrecuadre(c *gin.Context) {
	var req dto.CreatePrecuadreRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	precuadre, err := h.reconciliationService.CreatePrecuadre(c.Request.Context(), h.kind, c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create precuadre")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Precuadre created", precuadre))
}

// discardPrecuadre godoc
// @Summary Discard the precuadre
// @Description Returns a PRECUADRE box to ABIERTA.
// @Tags cash-boxes
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Box is not in PRECUADRE"
// @Security BearerAuth
// @Router /caja-chica/{id}/precuadre [delete]
// @Router /caja-general/{id}/precuadre [delete]
func (h *cashBoxHandler) discardPrecuadre(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.reconciliationService.DiscardPrecuadre(c.Request.Context(), h.kind, c.Param("id"), actor); err != nil {
		respondError(c, err, "Failed to discard precuadre")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Precuadre discarded", nil))
}

// submitCuadre godoc
// @Summary Submit the cuadre
// @Description Recomputes totals from approved entries, records the cuadre as CUADRADA or CON_DIFERENCIA and moves the box to CUADRADA. A petty box surplus is booked into the open general box.
// @Tags cash-boxes
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Param   cuadre body dto.SubmitCuadreRequest true "Bank deposits and declared totals"
// @Success 201 {object} dto.APIResponse{data=dto.CuadreResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "Wrong state or pending cortes"
// @Security BearerAuth
// @Router /caja-chica/cuadrar/{id} [post]
// @Router /caja-general/cuadrar/{id} [post]
func (h *cashBoxHandler) submitCuadre(c *gin.Context) {
	var req dto.SubmitCuadreRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	resp, err := h.reconciliationService.SubmitCuadre(c.Request.Context(), h.kind, c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to submit cuadre")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Cuadre recorded", resp))
}

// closeCashBox godoc
// @Summary Close a cash box
// @Description Moves a CUADRADA box to CERRADA.
// @Tags cash-boxes
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 200 {object} dto.APIResponse{data=domain.CashBox}
// @Failure 409 {object} dto.APIResponse "Box is not CUADRADA"
// @Security BearerAuth
// @Router /caja-chica/{id}/cerrar [post]
// @Router /caja-general/{id}/cerrar [post]
func (h *cashBoxHandler) closeCashBox(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	box, err := h.reconciliationService.CloseCashBox(c.Request.Context(), h.kind, c.Param("id"), actor)
	if err != nil {
		respondError(c, err, "Failed to close cash box")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Cash box closed", box))
}

// generateCancellationCode godoc
// @Summary Issue a cancellation code for the cuadre
// @Description ADMIN or GERENTE only. The code is bound to the box's cuadre and replaces any previous one.
// @Tags cancellation
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 201 {object} dto.APIResponse{data=dto.CancellationCodeResponse}
// @Failure 403 {object} dto.APIResponse "Role not allowed"
// @Failure 409 {object} dto.APIResponse "Box is not CUADRADA"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Failure 503 {object} dto.APIResponse "Code store unavailable"
// @Security BearerAuth
// @Router /caja-chica/{id}/codigo-cancelacion [get]
// @Router /caja-general/{id}/codigo-cancelacion [get]
func (h *cashBoxHandler) generateCancellationCode(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	auth, err := h.cancellationService.GenerateCuadreCode(c.Request.Context(), h.kind, c.Param("id"), actor)
	if err != nil {
		respondError(c, err, "Failed to issue cancellation code")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Cancellation code issued", slog.String("target_id", auth.TargetID))
	c.JSON(http.StatusCreated, dto.Ok("Cancellation code issued", dto.ToCancellationCodeResponse(auth)))
}

// cancelCuadre godoc
// @Summary Cancel the cuadre with a one-time code
// @Tags cancellation
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Param   cancel body dto.CancelRequest true "Code pair and motive"
// @Success 200 {object} dto.APIResponse{data=domain.Cuadre}
// @Failure 400 {object} dto.APIResponse "Missing or short motive"
// @Failure 409 {object} dto.APIResponse "Box is not CUADRADA"
// @Failure 422 {object} dto.APIResponse "Invalid, expired or used code"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Security BearerAuth
// @Router /caja-chica/{id}/cancelar [post]
// @Router /caja-general/{id}/cancelar [post]
func (h *cashBoxHandler) cancelCuadre(c *gin.Context) {
	var req dto.CancelRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	cuadre, err := h.cancellationService.CancelCuadre(c.Request.Context(), h.kind, c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to cancel cuadre")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Cuadre cancelled", cuadre))
}
