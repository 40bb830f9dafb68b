package manager

import (
	"context"

	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/recommend"
	"github.com/showsync/showsync/pkg/show"
	"github.com/showsync/showsync/pkg/store"
	"github.com/showsync/showsync/pkg/tmdb"
)

type MetadataClientInterface tmdb.ClientInterface
type RecommendClientInterface recommend.ClientInterface

// Manager owns a show collection and reconciles it against the outside world.
type Manager struct {
	store       store.Store
	metadata    MetadataClientInterface
	recommender RecommendClientInterface
	config      config.Sync
}

func New(metadataClient MetadataClientInterface, recommendClient RecommendClientInterface, store store.Store, config config.Sync) Manager {
	return Manager{
		store:       store,
		metadata:    metadataClient,
		recommender: recommendClient,
		config:      config,
	}
}

// ListShows returns every show in the collection sorted by id.
func (m Manager) ListShows(ctx context.Context) ([]show.Show, error) {
	collection, _, err := m.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return collection.All(), nil
}

// ListShowsByState returns the shows currently in the given state sorted by id.
func (m Manager) ListShowsByState(ctx context.Context, state show.State) ([]show.Show, error) {
	collection, _, err := m.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return collection.ByState(state), nil
}
