package repositories

// Repos bundles the repository interfaces the services depend on, so tests
// can swap in mocks per interface.
type Repos struct {
	Document DocumentRepo
	Ticket   TicketRepo
	Push     PushRepo
	User     UserRepo
}

func NewRepos() *Repos {
	return &Repos{
		Document: NewDocumentRepository(),
		Ticket:   NewTicketRepository(),
		Push:     NewPushRepository(),
		User:     NewUserRepository(),
	}
}
