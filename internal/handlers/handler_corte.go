package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

type corteHandler struct {
	corteService        portssvc.CorteSvcFacade
	cancellationService portssvc.CancellationSvcFacade
}

func newCorteHandler(cs portssvc.CorteSvcFacade, cancellation portssvc.CancellationSvcFacade) *corteHandler {
	return &corteHandler{
		corteService:        cs,
		cancellationService: cancellation,
	}
}

func registerCorteRoutes(rg *gin.RouterGroup, cs portssvc.CorteSvcFacade, cancellation portssvc.CancellationSvcFacade, codeGuard gin.HandlerFunc) {
	h := newCorteHandler(cs, cancellation)

	cortes := rg.Group("/cortes-usuarios")
	{
		cortes.POST("", h.createCorte)
		cortes.GET("", h.listCortes)
		cortes.GET("/:id/codigo-cancelacion", codeGuard, h.generateCancellationCode)
		cortes.PATCH("/:id/cancelar", codeGuard, h.cancelCorte)
		cortes.PATCH("/:id/:usuario", h.validateCorte)
	}
}

// createCorte godoc
// @Summary Record the caller's corte
// @Description One corte per user and box, while the box is open.
// @Tags cortes
// @Accept  json
// @Produce  json
// @Param   corte body dto.CreateCorteRequest true "Declared total"
// @Success 201 {object} dto.APIResponse{data=domain.UserCorte}
// @Failure 409 {object} dto.APIResponse "Already recorded or box not open"
// @Security BearerAuth
// @Router /cortes-usuarios [post]
func (h *corteHandler) createCorte(c *gin.Context) {
	var req dto.CreateCorteRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	corte, err := h.corteService.CreateCorte(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to record corte")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Corte recorded", corte))
}

// listCortes godoc
// @Summary List the cortes of a cash box
// @Tags cortes
// @Produce  json
// @Param   cashBoxID query string true "Cash box ID"
// @Success 200 {object} dto.APIResponse{data=[]domain.UserCorte}
// @Security BearerAuth
// @Router /cortes-usuarios [get]
func (h *corteHandler) listCortes(c *gin.Context) {
	cashBoxID, ok := requiredQuery(c, "cashBoxID")
	if !ok {
		return
	}
	cortes, err := h.corteService.ListCortes(c.Request.Context(), cashBoxID)
	if err != nil {
		respondError(c, err, "Failed to list cortes")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("", cortes))
}

// validateCorte godoc
// @Summary Validate a user's corte
// @Description SUPERVISOR, GERENTE or ADMIN; never the owner.
// @Tags cortes
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Param   usuario path string true "Owner of the corte"
// @Success 200 {object} dto.APIResponse{data=domain.UserCorte}
// @Failure 403 {object} dto.APIResponse "Not allowed to validate"
// @Failure 404 {object} dto.APIResponse "Corte not found"
// @Security BearerAuth
// @Router /cortes-usuarios/{id}/{usuario} [patch]
func (h *corteHandler) validateCorte(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	corte, err := h.corteService.ValidateCorte(c.Request.Context(), c.Param("id"), c.Param("usuario"), actor)
	if err != nil {
		respondError(c, err, "Failed to validate corte")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Corte validated", corte))
}

// generateCancellationCode godoc
// @Summary Issue a cancellation code for a corte
// @Tags cancellation
// @Produce  json
// @Param   id path string true "Corte ID"
// @Success 201 {object} dto.APIResponse{data=dto.CancellationCodeResponse}
// @Failure 403 {object} dto.APIResponse "Role not allowed"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Security BearerAuth
// @Router /cortes-usuarios/{id}/codigo-cancelacion [get]
func (h *corteHandler) generateCancellationCode(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	auth, err := h.cancellationService.GenerateCorteCode(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err, "Failed to issue cancellation code")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Cancellation code issued", dto.ToCancellationCodeResponse(auth)))
}

// cancelCorte godoc
// @Summary Cancel a corte with a one-time code
// @Tags cancellation
// @Accept  json
// @Produce  json
// @Param   id path string true "Corte ID"
// @Param   cancel body dto.CancelRequest true "Code pair and motive"
// @Success 200 {object} dto.APIResponse{data=domain.UserCorte}
// @Failure 400 {object} dto.APIResponse "Missing or short motive"
// @Failure 422 {object} dto.APIResponse "Invalid, expired or used code"
// @Security BearerAuth
// @Router /cortes-usuarios/{id}/cancelar [patch]
func (h *corteHandler) cancelCorte(c *gin.Context) {
	var req dto.CancelRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	corte, err := h.cancellationService.CancelCorte(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to cancel corte")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Corte cancelled", corte))
}
