package scenic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myTourGuide/domain"
)

type fakeScenicRepo struct {
	spots      map[uint64]domain.ScenicSpot
	lastFilter SearchFilter
	searchErr  error
}

func (f *fakeScenicRepo) Create(ctx context.Context, spot *domain.ScenicSpot) error {
	spot.ID = uint64(len(f.spots) + 1)
	f.spots[spot.ID] = *spot
	return nil
}

func (f *fakeScenicRepo) FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return domain.ScenicSpot{}, errors.New("scenic spot not found")
	}
	return spot, nil
}

func (f *fakeScenicRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error) {
	var out []domain.ScenicSpot
	// deliberately unordered relative to the request
	for _, spot := range f.spots {
		for _, id := range ids {
			if spot.ID == id {
				out = append(out, spot)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeScenicRepo) FindAll(ctx context.Context) ([]domain.ScenicSpot, error) {
	var out []domain.ScenicSpot
	for _, spot := range f.spots {
		out = append(out, spot)
	}
	return out, nil
}

func (f *fakeScenicRepo) Search(ctx context.Context, filter SearchFilter) ([]domain.ScenicSpot, int64, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	all, _ := f.FindAll(ctx)
	return all, int64(len(all)), nil
}

func (f *fakeScenicRepo) Update(ctx context.Context, spot *domain.ScenicSpot) error {
	if _, ok := f.spots[spot.ID]; !ok {
		return errors.New("scenic spot not found")
	}
	f.spots[spot.ID] = *spot
	return nil
}

func (f *fakeScenicRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.spots[id]; !ok {
		return errors.New("scenic spot not found")
	}
	delete(f.spots, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint64]domain.ScenicCategory
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uint64) (domain.ScenicCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return domain.ScenicCategory{}, errors.New("category not found")
	}
	return category, nil
}

type fakeStatsRepo struct {
	stats map[uint64]RatingStats
	err   error
}

func (f *fakeStatsRepo) RatingStats(ctx context.Context, scenicIDs []uint64) (map[uint64]RatingStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func newTestService() (*scenicService, *fakeScenicRepo, *fakeStatsRepo) {
	spots := &fakeScenicRepo{spots: map[uint64]domain.ScenicSpot{
		1: {ID: 1, Name: "West Lake", CategoryID: 5, Price: 0},
		2: {ID: 2, Name: "Old Town", CategoryID: 5, Price: 40},
		3: {ID: 3, Name: "Summit Trail", Price: 15},
	}}
	categories := &fakeCategoryRepo{categories: map[uint64]domain.ScenicCategory{
		5: {ID: 5, Name: "Nature"},
	}}
	stats := &fakeStatsRepo{stats: map[uint64]RatingStats{
		1: {Average: 4.5, Count: 12},
	}}
	return NewScenicService(spots, categories, stats), spots, stats
}

func TestGetScenicSpotsAppliesPagingDefaults(t *testing.T) {
	svc, spots, _ := newTestService()

	page, err := svc.GetScenicSpots(context.Background(), SearchFilter{Keyword: "lake"})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, spots.lastFilter.Page)
	assert.Equal(t, 10, spots.lastFilter.Size)
	assert.Equal(t, "lake", spots.lastFilter.Keyword)
}

func TestGetScenicSpotsFillsRatings(t *testing.T) {
	svc, _, _ := newTestService()

	page, err := svc.GetScenicSpots(context.Background(), SearchFilter{})
	require.NoError(t, err)

	var rated, unrated int
	for _, spot := range page.Records {
		if spot.ID == 1 {
			assert.Equal(t, 4.5, spot.Rating)
			assert.Equal(t, 12, spot.CommentCount)
			rated++
		} else {
			assert.Zero(t, spot.Rating)
			assert.Zero(t, spot.CommentCount)
			unrated++
		}
	}
	assert.Equal(t, 1, rated)
	assert.Equal(t, 2, unrated)
}

func TestGetScenicSpotsSurvivesStatsFailure(t *testing.T) {
	svc, _, stats := newTestService()
	stats.err = errors.New("stats query failed")

	page, err := svc.GetScenicSpots(context.Background(), SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Records, 3)
}

func TestGetScenicSpotsByIDsPreservesOrder(t *testing.T) {
	svc, _, _ := newTestService()

	spots, err := svc.GetScenicSpotsByIDs(context.Background(), []uint64{3, 99, 1})
	require.NoError(t, err)

	require.Len(t, spots, 2)
	assert.Equal(t, uint64(3), spots[0].ID)
	assert.Equal(t, uint64(1), spots[1].ID)
}

func TestCreateScenicSpotValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateScenicSpot(context.Background(), &domain.ScenicSpot{})
	assert.EqualError(t, err, "scenic spot name is required")

	_, err = svc.CreateScenicSpot(context.Background(), &domain.ScenicSpot{Name: "x", Price: -1})
	assert.EqualError(t, err, "price cannot be negative")

	_, err = svc.CreateScenicSpot(context.Background(), &domain.ScenicSpot{Name: "x", CategoryID: 99})
	assert.EqualError(t, err, "scenic category not found")

	created, err := svc.CreateScenicSpot(context.Background(), &domain.ScenicSpot{Name: "Canal Walk", CategoryID: 5})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdateScenicSpotNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateScenicSpot(context.Background(), &domain.ScenicSpot{ID: 99, Name: "Ghost"})
	assert.EqualError(t, err, "scenic spot not found")
}

func TestDeleteScenicSpot(t *testing.T) {
	svc, spots, _ := newTestService()

	require.NoError(t, svc.DeleteScenicSpot(context.Background(), 2))
	_, ok := spots.spots[2]
	assert.False(t, ok)

	err := svc.DeleteScenicSpot(context.Background(), 2)
	assert.EqualError(t, err, "scenic spot not found")
}
