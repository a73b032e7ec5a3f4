package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myTourGuide/domain"
)

type fakeCollectionRepo struct {
	items   []domain.ScenicCollection
	created int
}

func (f *fakeCollectionRepo) Create(ctx context.Context, collection *domain.ScenicCollection) error {
	f.created++
	collection.ID = uint64(len(f.items) + 1)
	f.items = append(f.items, *collection)
	return nil
}

func (f *fakeCollectionRepo) FindByUserAndScenic(ctx context.Context, userID uint, scenicID uint64) (domain.ScenicCollection, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.ScenicID == scenicID {
			return item, nil
		}
	}
	return domain.ScenicCollection{}, errors.New("collection not found")
}

func (f *fakeCollectionRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.ScenicCollection, error) {
	var out []domain.ScenicCollection
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCollectionRepo) Delete(ctx context.Context, userID uint, scenicID uint64) error {
	for i, item := range f.items {
		if item.UserID == userID && item.ScenicID == scenicID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("collection not found")
}

type fakeSpots struct{ known map[uint64]bool }

func (f fakeSpots) FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error) {
	if !f.known[id] {
		return domain.ScenicSpot{}, errors.New("scenic spot not found")
	}
	return domain.ScenicSpot{ID: id}, nil
}

func TestAddCollectionIsIdempotent(t *testing.T) {
	repo := &fakeCollectionRepo{}
	svc := NewCollectionService(repo, fakeSpots{known: map[uint64]bool{10: true}})

	require.NoError(t, svc.AddCollection(context.Background(), 1, 10))
	require.NoError(t, svc.AddCollection(context.Background(), 1, 10))

	assert.Equal(t, 1, repo.created)
}

func TestAddCollectionUnknownSpot(t *testing.T) {
	svc := NewCollectionService(&fakeCollectionRepo{}, fakeSpots{known: map[uint64]bool{}})

	err := svc.AddCollection(context.Background(), 1, 10)
	assert.EqualError(t, err, "scenic spot not found")
}

func TestRemoveCollection(t *testing.T) {
	repo := &fakeCollectionRepo{}
	svc := NewCollectionService(repo, fakeSpots{known: map[uint64]bool{10: true}})

	require.NoError(t, svc.AddCollection(context.Background(), 1, 10))
	require.NoError(t, svc.RemoveCollection(context.Background(), 1, 10))

	err := svc.RemoveCollection(context.Background(), 1, 10)
	assert.EqualError(t, err, "collection not found")
}

func TestIsCollected(t *testing.T) {
	repo := &fakeCollectionRepo{}
	svc := NewCollectionService(repo, fakeSpots{known: map[uint64]bool{10: true}})

	collected, err := svc.IsCollected(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, collected)

	require.NoError(t, svc.AddCollection(context.Background(), 1, 10))

	collected, err = svc.IsCollected(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, collected)
}

func TestGetUserCollectionsScopedToUser(t *testing.T) {
	repo := &fakeCollectionRepo{}
	spots := fakeSpots{known: map[uint64]bool{10: true, 11: true}}
	svc := NewCollectionService(repo, spots)

	require.NoError(t, svc.AddCollection(context.Background(), 1, 10))
	require.NoError(t, svc.AddCollection(context.Background(), 1, 11))
	require.NoError(t, svc.AddCollection(context.Background(), 2, 10))

	mine, err := svc.GetUserCollections(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
