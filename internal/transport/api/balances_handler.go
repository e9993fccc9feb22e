package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BalancesHandler struct {
	balanceSvs BalanceServicer
}

func NewBalancesHandler(balanceSvs BalanceServicer) *BalancesHandler {
	return &BalancesHandler{
		balanceSvs: balanceSvs,
	}
}

// Index GET RouteGroup + BalancesRoute. Карта контрагент -> нетто-баланс:
// положительное значение - юзер должен контрагенту, отрицательное - контрагент
// должен юзеру.
func (h *BalancesHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balances, err := h.balanceSvs.CalculateBalances(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}
