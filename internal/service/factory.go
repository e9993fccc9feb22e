package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type AppServices struct {
	UserService       *UserService
	RoommateService   *RoommateService
	ExpenseService    *ExpenseService
	SettlementService *SettlementService
	BalanceService    *BalanceService
}

func Factory(unitOfWork uow.UOW, hasher PasswordHasher, jwtSecret []byte, log *logrus.Entry) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, hasher, jwtSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	roommateService, roommateServiceErr := NewRoommateService(unitOfWork)
	if roommateServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", roommateServiceErr.Error())
	}

	expenseService, expenseServiceErr := NewExpenseService(unitOfWork, log)
	if expenseServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", expenseServiceErr.Error())
	}

	settlementService, settlementServiceErr := NewSettlementService(unitOfWork)
	if settlementServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", settlementServiceErr.Error())
	}

	balanceService, balanceServiceErr := NewBalanceService(unitOfWork)
	if balanceServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", balanceServiceErr.Error())
	}

	return &AppServices{
		UserService:       userService,
		RoommateService:   roommateService,
		ExpenseService:    expenseService,
		SettlementService: settlementService,
		BalanceService:    balanceService,
	}, nil
}
