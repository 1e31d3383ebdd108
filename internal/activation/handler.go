package activation

import (
	"strconv"

	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivationHandler struct {
	ledger *Ledger
}

func NewActivationHandler(ledger *Ledger) *ActivationHandler {
	return &ActivationHandler{ledger: ledger}
}

// Redeem consumes an activation key
// @Summary Redeem an activation key
// @Description Consumes the key and returns the course it unlocks. The course keeps the same number of valid keys.
// @Tags course
// @Accept json
// @Produce json
// @Param request body RedeemRequest true "activation key"
// @Success 200 {object} response.Response{data=RedeemResponse}
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /course/activate [post]
func (h *ActivationHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	course, err := h.ledger.Redeem(c.Request.Context(), req.KeyActive)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, RedeemResponse{ID: course.ID, Title: course.Title})
}

// Pool lists the current keys of a course
// @Summary List a course's activation keys
// @Tags course
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} response.Response{data=PoolResponse}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /course/keys/{id} [get]
func (h *ActivationHandler) Pool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("invalid course id"),
		))
		return
	}

	pool, err := h.ledger.Pool(c.Request.Context(), middleware.CurrentUser(c), uint(id))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, pool)
}
