package service

import (
	"basegraph.app/forum/internal/queue"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/store"
	"basegraph.app/forum/internal/visits"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	producer queue.Producer
	indexer  search.Indexer
	visits   visits.Tracker
	issueCfg IssueServiceConfig
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, indexer search.Indexer, tracker visits.Tracker, issueCfg IssueServiceConfig) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		producer: producer,
		indexer:  indexer,
		visits:   tracker,
		issueCfg: issueCfg,
	}
}

func (s *Services) Issues() IssueService {
	return NewIssueService(s.stores, s.txRunner, s.Search(), s.visits, s.issueCfg)
}

func (s *Services) Replies() ReplyService {
	return NewReplyService(s.stores, s.txRunner, s.producer, s.Search())
}

func (s *Services) Subscriptions() SubscriptionService {
	return NewSubscriptionService(s.stores.Subscriptions())
}

func (s *Services) Profiles() ProfileService {
	return NewProfileService(s.stores.Users(), s.stores.Activities())
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.stores, s.txRunner)
}

func (s *Services) Search() SearchService {
	return NewSearchService(s.stores, s.indexer)
}

func (s *Services) Categories() CategoryService {
	return NewCategoryService(s.stores.Categories())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Sessions(), s.stores.Users())
}
