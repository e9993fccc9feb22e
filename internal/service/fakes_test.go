package service

import (
	"context"
	"sort"
	"time"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

// fakeUOW хранит in-memory репозитории и выполняет Do без настоящей
// транзакции: fn получает сам fakeUOW в роли TX.
type fakeUOW struct {
	repos map[uow.RepositoryName]uow.Repository
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{repos: make(map[uow.RepositoryName]uow.Repository)}
}

func (f *fakeUOW) Register(name uow.RepositoryName, factory uow.RepositoryFactory) error {
	if _, ok := f.repos[name]; ok {
		return uow.ErrRepositoryAlreadyRegistered
	}
	f.repos[name] = factory(nil)
	return nil
}

func (f *fakeUOW) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	return fn(ctx, f)
}

func (f *fakeUOW) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	if repo, ok := f.repos[name]; ok {
		return repo, nil
	}
	return nil, uow.ErrRepositoryNotRegistered
}

func (f *fakeUOW) Get(name uow.RepositoryName) (uow.Repository, error) {
	return f.GetRepository(name)
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) ComparePassword(password, hash string) bool {
	return "hashed:"+password == hash
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == args.Username {
			return nil, domain.ErrDuplicateKey
		}
	}
	r.nextID++
	user := &domain.User{
		ID:        r.nextID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  args.Username,
		Password:  args.Password,
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeRoommateRepo struct {
	roommates map[int64]*domain.Roommate
	nextID    int64
}

func newFakeRoommateRepo() *fakeRoommateRepo {
	return &fakeRoommateRepo{roommates: make(map[int64]*domain.Roommate), nextID: 100}
}

func (r *fakeRoommateRepo) CreateRoommate(_ context.Context, args repoargs.CreateRoommate) (*domain.Roommate, error) {
	r.nextID++
	roommate := &domain.Roommate{
		ID:        r.nextID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    args.UserID,
		Name:      args.Name,
		Self:      args.Self,
	}
	r.roommates[roommate.ID] = roommate
	return roommate, nil
}

func (r *fakeRoommateRepo) FindRoommateByID(_ context.Context, id int64) (*domain.Roommate, error) {
	if roommate, ok := r.roommates[id]; ok {
		copied := *roommate
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeRoommateRepo) FindRoommatesByUserID(_ context.Context, userID int64) ([]domain.Roommate, error) {
	var result []domain.Roommate
	for _, roommate := range r.roommates {
		if roommate.UserID == userID {
			result = append(result, *roommate)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Self != result[j].Self {
			return result[i].Self
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeRoommateRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.roommates[id]
	return ok, nil
}

func (r *fakeRoommateRepo) DeleteRoommate(_ context.Context, id int64) error {
	if _, ok := r.roommates[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.roommates, id)
	return nil
}

type fakeExpenseRepo struct {
	expenses map[int64]*domain.Expense
	nextID   int64
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[int64]*domain.Expense), nextID: 1000}
}

func (r *fakeExpenseRepo) CreateExpense(_ context.Context, args repoargs.CreateExpense) (*domain.Expense, error) {
	r.nextID++
	expense := &domain.Expense{
		ID:          r.nextID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		UserID:      args.UserID,
		Description: args.Description,
		Amount:      args.Amount,
		Date:        args.Date,
		SplitType:   args.SplitType,
		PaidBySelf:  args.PaidBySelf,
	}
	r.expenses[expense.ID] = expense
	return expense, nil
}

func (r *fakeExpenseRepo) FindExpenseByID(_ context.Context, id int64) (*domain.Expense, error) {
	if expense, ok := r.expenses[id]; ok {
		copied := *expense
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeExpenseRepo) FindExpensesByUserID(_ context.Context, userID int64) ([]domain.Expense, error) {
	var result []domain.Expense
	for _, expense := range r.expenses {
		if expense.UserID == userID {
			result = append(result, *expense)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *fakeExpenseRepo) UpdateExpense(_ context.Context, args repoargs.UpdateExpense) (*domain.Expense, error) {
	expense, ok := r.expenses[args.ID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	expense.Description = args.Description
	expense.Amount = args.Amount
	expense.Date = args.Date
	expense.SplitType = args.SplitType
	expense.PaidBySelf = args.PaidBySelf
	expense.UpdatedAt = time.Now()
	copied := *expense
	return &copied, nil
}

func (r *fakeExpenseRepo) DeleteExpense(_ context.Context, id int64) error {
	if _, ok := r.expenses[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.expenses, id)
	return nil
}

type fakeShareRepo struct {
	shares      map[int64]*domain.ExpenseShare
	expenseRepo *fakeExpenseRepo
	nextID      int64
}

func newFakeShareRepo(expenseRepo *fakeExpenseRepo) *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[int64]*domain.ExpenseShare), expenseRepo: expenseRepo, nextID: 5000}
}

func (r *fakeShareRepo) CreateShare(_ context.Context, args repoargs.CreateShare) (*domain.ExpenseShare, error) {
	r.nextID++
	share := &domain.ExpenseShare{
		ID:            r.nextID,
		CreatedAt:     time.Now(),
		ExpenseID:     args.ExpenseID,
		ParticipantID: args.ParticipantID,
		Amount:        args.Amount,
	}
	r.shares[share.ID] = share
	return share, nil
}

func (r *fakeShareRepo) FindSharesByExpenseID(_ context.Context, expenseID int64) ([]domain.ExpenseShare, error) {
	return r.filter(func(s *domain.ExpenseShare) bool { return s.ExpenseID == expenseID }), nil
}

func (r *fakeShareRepo) FindSharesByParticipantID(_ context.Context, participantID int64) ([]domain.ExpenseShare, error) {
	return r.filter(func(s *domain.ExpenseShare) bool { return s.ParticipantID == participantID }), nil
}

func (r *fakeShareRepo) FindSharesByOwnerID(_ context.Context, userID int64) ([]domain.ExpenseShare, error) {
	return r.filter(func(s *domain.ExpenseShare) bool {
		expense, ok := r.expenseRepo.expenses[s.ExpenseID]
		return ok && expense.UserID == userID
	}), nil
}

func (r *fakeShareRepo) DeleteSharesByExpenseID(_ context.Context, expenseID int64) error {
	for id, share := range r.shares {
		if share.ExpenseID == expenseID {
			delete(r.shares, id)
		}
	}
	return nil
}

func (r *fakeShareRepo) DeleteSharesByParticipantID(_ context.Context, participantID int64) error {
	for id, share := range r.shares {
		if share.ParticipantID == participantID {
			delete(r.shares, id)
		}
	}
	return nil
}

func (r *fakeShareRepo) CountSharesByExpenseID(_ context.Context, expenseID int64) (int64, error) {
	var count int64
	for _, share := range r.shares {
		if share.ExpenseID == expenseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeShareRepo) filter(keep func(*domain.ExpenseShare) bool) []domain.ExpenseShare {
	var result []domain.ExpenseShare
	for _, share := range r.shares {
		if keep(share) {
			result = append(result, *share)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type fakeSettlementRepo struct {
	settlements map[int64]*domain.Settlement
	nextID      int64
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{settlements: make(map[int64]*domain.Settlement), nextID: 9000}
}

func (r *fakeSettlementRepo) CreateSettlement(_ context.Context, args repoargs.CreateSettlement) (*domain.Settlement, error) {
	r.nextID++
	settlement := &domain.Settlement{
		ID:         r.nextID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		PayerID:    args.PayerID,
		ReceiverID: args.ReceiverID,
		Amount:     args.Amount,
		Date:       args.Date,
	}
	r.settlements[settlement.ID] = settlement
	return settlement, nil
}

func (r *fakeSettlementRepo) FindSettlementByID(_ context.Context, id int64) (*domain.Settlement, error) {
	if settlement, ok := r.settlements[id]; ok {
		copied := *settlement
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeSettlementRepo) FindSettlementsByPartyID(_ context.Context, partyID int64) ([]domain.Settlement, error) {
	return r.filter(func(s *domain.Settlement) bool {
		return s.PayerID == partyID || s.ReceiverID == partyID
	}), nil
}

func (r *fakeSettlementRepo) FindSettlementsByPayerID(_ context.Context, payerID int64) ([]domain.Settlement, error) {
	return r.filter(func(s *domain.Settlement) bool { return s.PayerID == payerID }), nil
}

func (r *fakeSettlementRepo) FindSettlementsByReceiverID(_ context.Context, receiverID int64) ([]domain.Settlement, error) {
	return r.filter(func(s *domain.Settlement) bool { return s.ReceiverID == receiverID }), nil
}

func (r *fakeSettlementRepo) FindSettlementsByPartyIDAndDateRange(
	_ context.Context,
	partyID int64,
	dateRange repoargs.DateRange,
) ([]domain.Settlement, error) {
	return r.filter(func(s *domain.Settlement) bool {
		if s.PayerID != partyID && s.ReceiverID != partyID {
			return false
		}
		if !dateRange.From.IsZero() && s.Date.Before(dateRange.From) {
			return false
		}
		if !dateRange.To.IsZero() && s.Date.After(dateRange.To) {
			return false
		}
		return true
	}), nil
}

func (r *fakeSettlementRepo) UpdateSettlement(_ context.Context, args repoargs.UpdateSettlement) (*domain.Settlement, error) {
	settlement, ok := r.settlements[args.ID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	settlement.PayerID = args.PayerID
	settlement.ReceiverID = args.ReceiverID
	settlement.Amount = args.Amount
	settlement.Date = args.Date
	settlement.UpdatedAt = time.Now()
	copied := *settlement
	return &copied, nil
}

func (r *fakeSettlementRepo) DeleteSettlement(_ context.Context, id int64) error {
	if _, ok := r.settlements[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.settlements, id)
	return nil
}

func (r *fakeSettlementRepo) DeleteSettlementsByPartyID(_ context.Context, partyID int64) error {
	for id, settlement := range r.settlements {
		if settlement.PayerID == partyID || settlement.ReceiverID == partyID {
			delete(r.settlements, id)
		}
	}
	return nil
}

func (r *fakeSettlementRepo) filter(keep func(*domain.Settlement) bool) []domain.Settlement {
	var result []domain.Settlement
	for _, settlement := range r.settlements {
		if keep(settlement) {
			result = append(result, *settlement)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

// fakeRepoSet связывает все фейковые репозитории с одним fakeUOW.
type fakeRepoSet struct {
	uow            *fakeUOW
	userRepo       *fakeUserRepo
	roommateRepo   *fakeRoommateRepo
	expenseRepo    *fakeExpenseRepo
	shareRepo      *fakeShareRepo
	settlementRepo *fakeSettlementRepo
}

func newFakeRepoSet() *fakeRepoSet {
	set := &fakeRepoSet{
		uow:            newFakeUOW(),
		userRepo:       newFakeUserRepo(),
		roommateRepo:   newFakeRoommateRepo(),
		expenseRepo:    newFakeExpenseRepo(),
		settlementRepo: newFakeSettlementRepo(),
	}
	set.shareRepo = newFakeShareRepo(set.expenseRepo)

	set.uow.repos[uow.RepositoryName(repoargs.UserRepoName)] = set.userRepo
	set.uow.repos[uow.RepositoryName(repoargs.RoommateRepoName)] = set.roommateRepo
	set.uow.repos[uow.RepositoryName(repoargs.ExpenseRepoName)] = set.expenseRepo
	set.uow.repos[uow.RepositoryName(repoargs.ShareRepoName)] = set.shareRepo
	set.uow.repos[uow.RepositoryName(repoargs.SettlementRepoName)] = set.settlementRepo
	return set
}

// mustAddUser создает юзера напрямую в фейках, вместе с self-roommate.
func (s *fakeRepoSet) mustAddUser(username string) *domain.User {
	user, _ := s.userRepo.CreateUser(context.Background(), repoargs.CreateUser{
		Username: username,
		Password: "hashed:secret",
	})
	_, _ = s.roommateRepo.CreateRoommate(context.Background(), repoargs.CreateRoommate{
		UserID: user.ID,
		Name:   username,
		Self:   true,
	})
	return user
}

// mustAddRoommate создает roommate'а напрямую в фейках.
func (s *fakeRepoSet) mustAddRoommate(userID int64, name string) *domain.Roommate {
	roommate, _ := s.roommateRepo.CreateRoommate(context.Background(), repoargs.CreateRoommate{
		UserID: userID,
		Name:   name,
	})
	return roommate
}
