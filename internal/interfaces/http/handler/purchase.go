package handler

import (
	"errors"
	"time"

	commerceapp "github.com/glossary/backend/internal/application/commerce"
	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles the payment webhook and purchase queries
type PurchaseHandler struct {
	BaseHandler
	purchaseService *commerceapp.PurchaseService
	reportService   *commerceapp.ReportService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(
	purchaseService *commerceapp.PurchaseService,
	reportService *commerceapp.ReportService,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		reportService:   reportService,
	}
}

// GumroadWebhook godoc
// @Summary      Gumroad sale webhook
// @Description  Receive a form-encoded Gumroad ping. Test pings and replayed
// @Description  notifications are acknowledged without side effects.
// @Tags         purchases
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      200 {object} dto.Response{data=commerceapp.WebhookResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /webhooks/gumroad [post]
func (h *PurchaseHandler) GumroadWebhook(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.BadRequest(c, "Invalid form payload")
		return
	}

	form := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}

	result, err := h.purchaseService.HandleWebhook(c.Request.Context(), form)
	if err != nil {
		if errors.Is(err, commerceapp.ErrWebhookVerificationFailed) {
			h.Unauthorized(c, "Webhook verification failed")
			return
		}
		if errors.Is(err, commerceapp.ErrWebhookUserNotFound) {
			h.NotFound(c, "Buyer not found")
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine godoc
// @Summary      List own purchases
// @Description  Retrieve the authenticated user's purchases, newest first
// @Tags         purchases
// @Produce      json
// @Success      200 {object} dto.Response{data=[]commerce.Purchase}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchases/me [get]
func (h *PurchaseHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	purchases, err := h.purchaseService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchases)
}

// GetByOrderID godoc
// @Summary      Get purchase by order ID
// @Description  Retrieve a purchase by the provider's order ID
// @Tags         purchases
// @Produce      json
// @Param        order_id path string true "Provider order ID"
// @Success      200 {object} dto.Response{data=commerce.Purchase}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/purchases/{order_id} [get]
func (h *PurchaseHandler) GetByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")

	purchase, err := h.purchaseService.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// ListRecent godoc
// @Summary      List recent purchases
// @Description  Retrieve purchases page by page, optionally filtered by status
// @Tags         purchases
// @Produce      json
// @Param        status query string false "Status filter" Enums(pending, completed, failed, refunded)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=shared.Paginated[commerce.Purchase]}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/purchases [get]
func (h *PurchaseHandler) ListRecent(c *gin.Context) {
	filter := bindFilter(c)

	var status commerce.PurchaseStatus
	if raw := c.Query("status"); raw != "" {
		status = commerce.PurchaseStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return
		}
	}

	page, err := h.purchaseService.ListRecent(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, page)
}

// bindRevenueFilter reads the report date range from query parameters.
// Dates accept RFC3339 timestamps or plain YYYY-MM-DD dates.
func bindRevenueFilter(c *gin.Context) (commerce.RevenueFilter, error) {
	var filter commerce.RevenueFilter

	parse := func(raw string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := parse(raw)
		if err != nil {
			return filter, err
		}
		filter.StartDate = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parse(raw)
		if err != nil {
			return filter, err
		}
		filter.EndDate = t
	}

	return filter, nil
}

// RevenueSummary godoc
// @Summary      Revenue summary
// @Description  Aggregate completed purchases per currency in the period.
// @Description  The range defaults to the last month.
// @Tags         reports
// @Produce      json
// @Param        start_date query string false "Period start (RFC3339 or YYYY-MM-DD)"
// @Param        end_date query string false "Period end (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=commerce.RevenueSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/revenue [get]
func (h *PurchaseHandler) RevenueSummary(c *gin.Context) {
	filter, err := bindRevenueFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format")
		return
	}

	summary, err := h.reportService.RevenueSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// DailyRevenue godoc
// @Summary      Daily revenue trend
// @Description  Per-day, per-currency revenue over the period
// @Tags         reports
// @Produce      json
// @Param        start_date query string false "Period start (RFC3339 or YYYY-MM-DD)"
// @Param        end_date query string false "Period end (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]commerce.DailyRevenue}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/revenue/daily [get]
func (h *PurchaseHandler) DailyRevenue(c *gin.Context) {
	filter, err := bindRevenueFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format")
		return
	}

	trend, err := h.reportService.DailyRevenue(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trend)
}

// RefundAnalytics godoc
// @Summary      Refund analytics
// @Description  Refund counts, refunded amounts per currency and the refund
// @Description  rate over the period
// @Tags         reports
// @Produce      json
// @Param        start_date query string false "Period start (RFC3339 or YYYY-MM-DD)"
// @Param        end_date query string false "Period end (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=commerce.RefundAnalytics}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/refunds [get]
func (h *PurchaseHandler) RefundAnalytics(c *gin.Context) {
	filter, err := bindRevenueFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format")
		return
	}

	analytics, err := h.reportService.RefundAnalytics(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, analytics)
}

// PurchaseFunnel godoc
// @Summary      Purchase funnel
// @Description  Relate the user base to paying customers
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=commerce.PurchaseFunnel}
// @Security     BearerAuth
// @Router       /admin/reports/funnel [get]
func (h *PurchaseHandler) PurchaseFunnel(c *gin.Context) {
	funnel, err := h.reportService.PurchaseFunnel(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, funnel)
}

// TopBuyers godoc
// @Summary      Top buyers
// @Description  Rank users by completed purchase volume per currency
// @Tags         reports
// @Produce      json
// @Param        start_date query string false "Period start (RFC3339 or YYYY-MM-DD)"
// @Param        end_date query string false "Period end (RFC3339 or YYYY-MM-DD)"
// @Param        top_n query int false "Number of buyers" default(10)
// @Success      200 {object} dto.Response{data=[]commerce.TopBuyer}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/top-buyers [get]
func (h *PurchaseHandler) TopBuyers(c *gin.Context) {
	filter, err := bindRevenueFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format")
		return
	}

	var query struct {
		TopN int `form:"top_n"`
	}
	if err := c.ShouldBindQuery(&query); err == nil && query.TopN > 0 {
		filter.TopN = query.TopN
	}

	buyers, err := h.reportService.TopBuyers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, buyers)
}
