// Package api содержит gin-роутер и обработчики HTTP API.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rubayet19/roommate-expense-splitter/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup = "/api"

	RegisterRoute = "/user/register"
	LoginRoute    = "/user/login"

	RoommatesRoute          = "/roommates"
	RoommateRoute           = "/roommates/:id"
	ExpensesRoute           = "/expenses"
	ExpenseRoute            = "/expenses/:id"
	BalancesRoute           = "/balances"
	SettlementsRoute        = "/settlements"
	SettlementRoute         = "/settlements/:id"
	SettlementSummaryRoute  = "/settlements/summary"
	SettlementTotalRoute    = "/settlements/total"
	SettlementBalancesRoute = "/settlements/balances"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	UserService       UserServicer
	RoommateService   RoommateServicer
	ExpenseService    ExpenseServicer
	SettlementService SettlementServicer
	BalanceService    BalanceServicer
	JWTSecretKey      []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	roommatesHandler := NewRoommatesHandler(args.RoommateService)
	expensesHandler := NewExpensesHandler(args.ExpenseService)
	settlementsHandler := NewSettlementsHandler(args.SettlementService)
	balancesHandler := NewBalancesHandler(args.BalanceService)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(RoommatesRoute, roommatesHandler.Index)
	api.POST(RoommatesRoute, roommatesHandler.Create)
	api.GET(RoommateRoute, roommatesHandler.Show)
	api.DELETE(RoommateRoute, roommatesHandler.Delete)

	api.GET(ExpensesRoute, expensesHandler.Index)
	api.POST(ExpensesRoute, expensesHandler.Create)
	api.GET(ExpenseRoute, expensesHandler.Show)
	api.PUT(ExpenseRoute, expensesHandler.Update)
	api.DELETE(ExpenseRoute, expensesHandler.Delete)

	api.GET(BalancesRoute, balancesHandler.Index)

	api.GET(SettlementsRoute, settlementsHandler.Index)
	api.POST(SettlementsRoute, settlementsHandler.Create)
	api.GET(SettlementSummaryRoute, settlementsHandler.Summary)
	api.GET(SettlementTotalRoute, settlementsHandler.Total)
	api.GET(SettlementBalancesRoute, settlementsHandler.Balances)
	api.GET(SettlementRoute, settlementsHandler.Show)
	api.PUT(SettlementRoute, settlementsHandler.Update)
	api.DELETE(SettlementRoute, settlementsHandler.Delete)

	return r
}
