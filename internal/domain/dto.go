package domain

type SplitType string

const (
	SplitTypeEqual  SplitType = "EQUAL"
	SplitTypeCustom SplitType = "CUSTOM"
)

func (s SplitType) Valid() bool {
	return s == SplitTypeEqual || s == SplitTypeCustom
}

type PartyKind string

const (
	PartyKindUser     PartyKind = "user"
	PartyKindRoommate PartyKind = "roommate"
)

// PartyRef - размеченная ссылка на сторону расчета: сырой id из запроса может
// указывать как на юзера, так и на roommate. Разрешается один раз на границе
// сервиса.
type PartyRef struct {
	Kind PartyKind
	ID   int64
}

func (p PartyRef) IsUser() bool {
	return p.Kind == PartyKindUser
}
