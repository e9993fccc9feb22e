package repoargs

type RepositoryName string

const (
	UserRepoName       RepositoryName = "user"
	RoommateRepoName   RepositoryName = "roommate"
	ExpenseRepoName    RepositoryName = "expense"
	ShareRepoName      RepositoryName = "expense_share"
	SettlementRepoName RepositoryName = "settlement"
)
