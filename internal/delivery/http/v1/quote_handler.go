package v1

import (
	"errors"
	"io"
	"net/http"

	"colchester-plumber-api/internal/delivery/http/response"
	"colchester-plumber-api/internal/domain"
	"colchester-plumber-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// MsgQuoteSubmitted is the success message shown by the website.
const MsgQuoteSubmitted = "Quote request submitted successfully"

type QuoteHandler struct {
	quoteUC domain.QuoteUsecase
}

// NewQuoteHandler registers the quote route (public, no auth required).
// limiter runs before the handler and may be a no-op.
func NewQuoteHandler(public *gin.RouterGroup, quoteUC domain.QuoteUsecase, limiter gin.HandlerFunc) {
	handler := &QuoteHandler{
		quoteUC: quoteUC,
	}

	public.POST("/send-email", limiter, handler.SendEmail)
}

// SendEmail godoc
// @Summary      Submit Quote Request
// @Description  Emails the quote request to the business and sends the customer an auto-reply.
// @Tags         quote
// @Accept       json
// @Produce      json
// @Param        quote  body      domain.QuoteRequest  true  "Quote Request"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.ErrorResponse
// @Failure      405    {object}  response.ErrorResponse
// @Failure      429    {object}  response.ErrorResponse
// @Failure      500    {object}  response.ErrorResponse
// @Failure      503    {object}  response.ErrorResponse
// @Router       /send-email [post]
func (h *QuoteHandler) SendEmail(c *gin.Context) {
	var req domain.QuoteRequest
	// An empty body is just a request with every field missing.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.BadRequest("Invalid request data").WithDetail("Request body must be a JSON object"))
		return
	}

	if err := h.quoteUC.SubmitQuote(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgQuoteSubmitted, nil)
}
