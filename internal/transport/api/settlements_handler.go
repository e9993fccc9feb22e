package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service"
)

type SettlementsHandler struct {
	settlementSvs SettlementServicer
}

func NewSettlementsHandler(settlementSvs SettlementServicer) *SettlementsHandler {
	return &SettlementsHandler{
		settlementSvs: settlementSvs,
	}
}

type SettlementParams struct {
	PayerID    int64           `binding:"required" json:"payerId"`
	ReceiverID int64           `binding:"required" json:"receiverId"`
	Amount     decimal.Decimal `binding:"required" json:"amount"`
	Date       string          `binding:"required" json:"date"`
}

type SettlementResponse struct {
	ID         int64           `json:"id"`
	PayerID    int64           `json:"payerId"`
	ReceiverID int64           `json:"receiverId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Index GET RouteGroup + SettlementsRoute. Опциональные query параметры from и
// to (формат 2006-01-02) ограничивают выборку по дате, обе границы
// включительно.
func (h *SettlementsHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var dateRange repoargs.DateRange
	if from := c.Query("from"); from != "" {
		date, err := parseDate(from)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid from date"})
			return
		}
		dateRange.From = date
	}
	if to := c.Query("to"); to != "" {
		date, err := parseDate(to)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid to date"})
			return
		}
		dateRange.To = date
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settlements, err := h.settlementSvs.ListSettlements(reqCtx, currentUserID, dateRange)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]SettlementResponse, len(settlements))
	for i := range settlements {
		response[i] = newSettlementResponse(&settlements[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + SettlementsRoute.
func (h *SettlementsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	args, ok := bindSettlementParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settlement, err := h.settlementSvs.CreateSettlement(reqCtx, currentUserID, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSettlementResponse(settlement))
}

// Show GET RouteGroup + SettlementRoute.
func (h *SettlementsHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	settlementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settlement, err := h.settlementSvs.GetSettlement(reqCtx, currentUserID, settlementID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettlementResponse(settlement))
}

// Update PUT RouteGroup + SettlementRoute.
func (h *SettlementsHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	settlementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	args, bindOk := bindSettlementParams(c)
	if !bindOk {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settlement, err := h.settlementSvs.UpdateSettlement(reqCtx, currentUserID, settlementID, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettlementResponse(settlement))
}

// Delete DELETE RouteGroup + SettlementRoute.
func (h *SettlementsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	settlementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.settlementSvs.DeleteSettlement(reqCtx, currentUserID, settlementID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

type BalanceSummaryResponse struct {
	TotalOwed    decimal.Decimal `json:"totalOwed"`
	TotalOwes    decimal.Decimal `json:"totalOwes"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// Summary GET RouteGroup + SettlementSummaryRoute. Сводка только по платежам,
// без учета долей расходов.
func (h *SettlementsHandler) Summary(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := h.settlementSvs.GetBalanceSummary(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceSummaryResponse{
		TotalOwed:    summary.TotalOwed,
		TotalOwes:    summary.TotalOwes,
		TotalBalance: summary.TotalBalance,
	})
}

// Total GET RouteGroup + SettlementTotalRoute.
func (h *SettlementsHandler) Total(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	total, err := h.settlementSvs.CalculateTotalSettledAmount(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// Balances GET RouteGroup + SettlementBalancesRoute. Нетто по платежам в
// разрезе контрагентов.
func (h *SettlementsHandler) Balances(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balances, err := h.settlementSvs.GetBalancesWithRoommates(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func bindSettlementParams(c *gin.Context) (service.SettlementArgs, bool) {
	var params SettlementParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return service.SettlementArgs{}, false
	}

	date, dateErr := parseDate(params.Date)
	if dateErr != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date format"})
		return service.SettlementArgs{}, false
	}

	return service.SettlementArgs{
		PayerID:    params.PayerID,
		ReceiverID: params.ReceiverID,
		Amount:     params.Amount,
		Date:       date,
	}, true
}

func newSettlementResponse(settlement *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:         settlement.ID,
		PayerID:    settlement.PayerID,
		ReceiverID: settlement.ReceiverID,
		Amount:     settlement.Amount,
		Date:       settlement.Date.Format(dateLayout),
		CreatedAt:  settlement.CreatedAt,
		UpdatedAt:  settlement.UpdatedAt,
	}
}
