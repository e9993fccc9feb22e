package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/calculator"
	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service"
)

type ExpensesHandler struct {
	expenseSvs ExpenseServicer
}

func NewExpensesHandler(expenseSvs ExpenseServicer) *ExpensesHandler {
	return &ExpensesHandler{
		expenseSvs: expenseSvs,
	}
}

type ContributionParams struct {
	ParticipantID int64           `binding:"required" json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`
}

// ExpenseParams - тело запроса создания и обновления расхода. Порядок
// contributions значим: при EQUAL-делении лишние центы достаются первым.
type ExpenseParams struct {
	Description   string               `binding:"required,min=1,max=255"      json:"description"`
	Amount        decimal.Decimal      `binding:"required"                    json:"amount"`
	Date          string               `binding:"required"                    json:"date"`
	SplitType     string               `binding:"required,oneof=EQUAL CUSTOM" json:"splitType"`
	Contributions []ContributionParams `binding:"required,min=1,dive"         json:"contributions"`
	PaidBy        []int64              `binding:"required,min=1"              json:"paidBy"`
}

type ShareResponse struct {
	ID            int64           `json:"id"`
	ParticipantID int64           `json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`
}

type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	SplitType   string          `json:"splitType"`
	PaidBySelf  bool            `json:"paidBySelf"`
	Shares      []ShareResponse `json:"shares"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Index GET RouteGroup + ExpensesRoute. Расходы юзера с долями, новые первыми.
func (h *ExpensesHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	expenses, err := h.expenseSvs.ListUserExpenses(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		response[i] = newExpenseResponse(&expenses[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + ExpensesRoute.
func (h *ExpensesHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	args, ok := bindExpenseParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	expense, err := h.expenseSvs.CreateExpense(reqCtx, currentUserID, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newExpenseResponse(expense))
}

// Show GET RouteGroup + ExpenseRoute.
func (h *ExpensesHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	expense, err := h.expenseSvs.GetExpense(reqCtx, currentUserID, expenseID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// Update PUT RouteGroup + ExpenseRoute. Полная перезапись: клиент присылает
// весь набор участников заново.
func (h *ExpensesHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	args, bindOk := bindExpenseParams(c)
	if !bindOk {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	expense, err := h.expenseSvs.UpdateExpense(reqCtx, currentUserID, expenseID, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// Delete DELETE RouteGroup + ExpenseRoute.
func (h *ExpensesHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.expenseSvs.DeleteExpense(reqCtx, currentUserID, expenseID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func bindExpenseParams(c *gin.Context) (service.ExpenseArgs, bool) {
	var params ExpenseParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return service.ExpenseArgs{}, false
	}

	date, dateErr := parseDate(params.Date)
	if dateErr != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date format"})
		return service.ExpenseArgs{}, false
	}

	contributions := make([]calculator.Contribution, len(params.Contributions))
	for i, contribution := range params.Contributions {
		contributions[i] = calculator.Contribution{
			ParticipantID: contribution.ParticipantID,
			Amount:        contribution.Amount,
		}
	}

	return service.ExpenseArgs{
		Description:   params.Description,
		Amount:        params.Amount,
		Date:          date,
		SplitType:     domain.SplitType(params.SplitType),
		Contributions: contributions,
		PaidBy:        params.PaidBy,
	}, true
}

func newExpenseResponse(expense *service.ExpenseWithShares) ExpenseResponse {
	shares := make([]ShareResponse, len(expense.Shares))
	for i, share := range expense.Shares {
		shares[i] = ShareResponse{
			ID:            share.ID,
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
		}
	}
	return ExpenseResponse{
		ID:          expense.Expense.ID,
		Description: expense.Expense.Description,
		Amount:      expense.Expense.Amount,
		Date:        expense.Expense.Date.Format(dateLayout),
		SplitType:   string(expense.Expense.SplitType),
		PaidBySelf:  expense.Expense.PaidBySelf,
		Shares:      shares,
		CreatedAt:   expense.Expense.CreatedAt,
		UpdatedAt:   expense.Expense.UpdatedAt,
	}
}
