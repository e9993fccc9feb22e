package repoargs

type CreateUser struct {
	Username string
	Password string
}

type CreateRoommate struct {
	UserID int64
	Name   string
	Self   bool
}
