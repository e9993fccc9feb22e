// Package app собирает приложение: конфиг, база, unit of work, сервисы,
// роутер.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/Rubayet19/roommate-expense-splitter/internal/config"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/pgrepo"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service/psswd"
	"github.com/Rubayet19/roommate-expense-splitter/internal/transport/api"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(
		unitOfWork,
		psswd.PasswordHash(""),
		[]byte(a.Config.JWTUserSecret),
		logrus.NewEntry(a.Logger),
	)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:            a.Logger,
		UserService:       services.UserService,
		RoommateService:   services.RoommateService,
		ExpenseService:    services.ExpenseService,
		SettlementService: services.SettlementService,
		BalanceService:    services.BalanceService,
		JWTSecretKey:      []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.RoommateRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewRoommateRepository(dbtx)
		},
		repoargs.ExpenseRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewExpenseRepository(dbtx)
		},
		repoargs.ShareRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewShareRepository(dbtx)
		},
		repoargs.SettlementRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewSettlementRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
