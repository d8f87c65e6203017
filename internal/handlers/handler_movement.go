package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// movementHandler handles movements and policy payments, which share the
// same create/list/validate shape.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

func registerMovementRoutes(rg *gin.RouterGroup, ms portssvc.MovementSvcFacade) {
	h := newMovementHandler(ms)

	movements := rg.Group("/movimientos")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.PATCH("/:id", h.validateMovement)
	}

	payments := rg.Group("/pagos-polizas")
	{
		payments.POST("", h.createPolicyPayment)
		payments.GET("", h.listPolicyPayments)
		payments.PATCH("/:id", h.validatePolicyPayment)
	}
}

// createMovement godoc
// @Summary Record a movement
// @Description Cash movements are approved on creation; other methods wait for a validator. Amounts above 100 need a voucher reference and above 500 a manager approval reference.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.APIResponse{data=domain.Movement}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "Box is not open"
// @Security BearerAuth
// @Router /movimientos [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to record movement")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Movement recorded", movement))
}

// listMovements godoc
// @Summary List the movements of a cash box
// @Tags movements
// @Produce  json
// @Param   cashBoxID query string true "Cash box ID"
// @Param   validado query string false "0/PENDIENTE, 1/APROBADO or 2/RECHAZADO"
// @Success 200 {object} dto.APIResponse{data=[]domain.Movement}
// @Failure 400 {object} dto.APIResponse "Invalid filter"
// @Security BearerAuth
// @Router /movimientos [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	cashBoxID, ok := requiredQuery(c, "cashBoxID")
	if !ok {
		return
	}
	state, ok := validationFilter(c)
	if !ok {
		return
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), cashBoxID, state)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("", movements))
}

// validateMovement godoc
// @Summary Approve or reject a pending movement
// @Description SUPERVISOR, GERENTE or ADMIN; never the creator. Rejection requires a motive.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   id path string true "Movement ID"
// @Param   validation body dto.ValidateEntryRequest true "APROBAR or RECHAZAR"
// @Success 200 {object} dto.APIResponse{data=domain.Movement}
// @Failure 400 {object} dto.APIResponse "Missing motive"
// @Failure 403 {object} dto.APIResponse "Not allowed to validate"
// @Failure 409 {object} dto.APIResponse "Already validated"
// @Security BearerAuth
// @Router /movimientos/{id} [patch]
func (h *movementHandler) validateMovement(c *gin.Context) {
	var req dto.ValidateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var (
		movement *domain.Movement
		err      error
	)
	if req.Accion == dto.ActionApprove {
		movement, err = h.movementService.ApproveMovement(c.Request.Context(), c.Param("id"), actor)
	} else {
		movement, err = h.movementService.RejectMovement(c.Request.Context(), c.Param("id"), req.Motivo, actor)
	}
	if err != nil {
		respondError(c, err, "Failed to validate movement")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Movement "+movement.Validado.String(), movement))
}

// createPolicyPayment godoc
// @Summary Record a policy payment
// @Tags policy-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePolicyPaymentRequest true "Policy payment"
// @Success 201 {object} dto.APIResponse{data=domain.PolicyPayment}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "Box is not open"
// @Security BearerAuth
// @Router /pagos-polizas [post]
func (h *movementHandler) createPolicyPayment(c *gin.Context) {
	var req dto.CreatePolicyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	payment, err := h.movementService.CreatePolicyPayment(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to record policy payment")
		return
	}
	c.JSON(http.StatusCreated, dto.Ok("Policy payment recorded", payment))
}

// listPolicyPayments godoc
// @Summary List the policy payments of a cash box
// @Tags policy-payments
// @Produce  json
// @Param   cashBoxID query string true "Cash box ID"
// @Param   validado query string false "0/PENDIENTE, 1/APROBADO or 2/RECHAZADO"
// @Success 200 {object} dto.APIResponse{data=[]domain.PolicyPayment}
// @Security BearerAuth
// @Router /pagos-polizas [get]
func (h *movementHandler) listPolicyPayments(c *gin.Context) {
	cashBoxID, ok := requiredQuery(c, "cashBoxID")
	if !ok {
		return
	}
	state, ok := validationFilter(c)
	if !ok {
		return
	}

	payments, err := h.movementService.ListPolicyPayments(c.Request.Context(), cashBoxID, state)
	if err != nil {
		respondError(c, err, "Failed to list policy payments")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("", payments))
}

// validatePolicyPayment godoc
// @Summary Approve or reject a pending policy payment
// @Tags policy-payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Policy payment ID"
// @Param   validation body dto.ValidateEntryRequest true "APROBAR or RECHAZAR"
// @Success 200 {object} dto.APIResponse{data=domain.PolicyPayment}
// @Failure 400 {object} dto.APIResponse "Missing motive"
// @Failure 403 {object} dto.APIResponse "Not allowed to validate"
// @Security BearerAuth
// @Router /pagos-polizas/{id} [patch]
func (h *movementHandler) validatePolicyPayment(c *gin.Context) {
	var req dto.ValidateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var (
		payment *domain.PolicyPayment
		err     error
	)
	if req.Accion == dto.ActionApprove {
		payment, err = h.movementService.ApprovePolicyPayment(c.Request.Context(), c.Param("id"), actor)
	} else {
		payment, err = h.movementService.RejectPolicyPayment(c.Request.Context(), c.Param("id"), req.Motivo, actor)
	}
	if err != nil {
		respondError(c, err, "Failed to validate policy payment")
		return
	}
	c.JSON(http.StatusOK, dto.Ok("Policy payment "+payment.Validado.String(), payment))
}
