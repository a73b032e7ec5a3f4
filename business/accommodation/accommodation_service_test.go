package accommodation

import (
	"context"
	"errors"
	"testing"

	"myTourGuide/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccommodationRepo struct {
	accommodations map[uint64]domain.Accommodation
	nextID         uint64
	lastFilter     SearchFilter
	searchErr      error
}

func newFakeAccommodationRepo() *fakeAccommodationRepo {
	return &fakeAccommodationRepo{
		accommodations: make(map[uint64]domain.Accommodation),
		nextID:         1,
	}
}

func (f *fakeAccommodationRepo) Create(_ context.Context, acc *domain.Accommodation) error {
	acc.ID = f.nextID
	f.nextID++
	f.accommodations[acc.ID] = *acc
	return nil
}

func (f *fakeAccommodationRepo) FindByID(_ context.Context, id uint64) (domain.Accommodation, error) {
	acc, ok := f.accommodations[id]
	if !ok {
		return domain.Accommodation{}, errors.New("accommodation not found")
	}
	return acc, nil
}

func (f *fakeAccommodationRepo) Search(_ context.Context, filter SearchFilter) ([]domain.Accommodation, int64, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	var out []domain.Accommodation
	for _, acc := range f.accommodations {
		out = append(out, acc)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAccommodationRepo) Update(_ context.Context, acc *domain.Accommodation) error {
	if _, ok := f.accommodations[acc.ID]; !ok {
		return errors.New("accommodation not found")
	}
	f.accommodations[acc.ID] = *acc
	return nil
}

func (f *fakeAccommodationRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := f.accommodations[id]; !ok {
		return errors.New("accommodation not found")
	}
	delete(f.accommodations, id)
	return nil
}

func (f *fakeAccommodationRepo) Types(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var types []string
	for _, acc := range f.accommodations {
		if acc.Type != "" && !seen[acc.Type] {
			seen[acc.Type] = true
			types = append(types, acc.Type)
		}
	}
	return types, nil
}

type fakeScenicChecker struct {
	spots map[uint64]domain.ScenicSpot
	calls int
}

func (f *fakeScenicChecker) FindByID(_ context.Context, id uint64) (domain.ScenicSpot, error) {
	f.calls++
	spot, ok := f.spots[id]
	if !ok {
		return domain.ScenicSpot{}, errors.New("scenic spot not found")
	}
	return spot, nil
}

func newTestService() (*accommodationService, *fakeAccommodationRepo, *fakeScenicChecker) {
	repo := newFakeAccommodationRepo()
	scenics := &fakeScenicChecker{spots: map[uint64]domain.ScenicSpot{
		1: {ID: 1, Name: "West Lake"},
	}}
	return NewAccommodationService(repo, scenics), repo, scenics
}

func TestGetAccommodations_PagingDefaults(t *testing.T) {
	svc, repo, _ := newTestService()

	page, err := svc.GetAccommodations(context.Background(), SearchFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.Size)
}

func TestGetAccommodations_FillsScenicNames(t *testing.T) {
	svc, repo, scenics := newTestService()

	repo.accommodations[1] = domain.Accommodation{ID: 1, Name: "Lakeside Hotel", ScenicID: 1}
	repo.accommodations[2] = domain.Accommodation{ID: 2, Name: "Lakeview Inn", ScenicID: 1}
	repo.accommodations[3] = domain.Accommodation{ID: 3, Name: "City Hostel"}

	page, err := svc.GetAccommodations(context.Background(), SearchFilter{})
	require.NoError(t, err)
	require.Len(t, page.Records, 3)

	byID := make(map[uint64]domain.Accommodation)
	for _, acc := range page.Records {
		byID[acc.ID] = acc
	}
	assert.Equal(t, "West Lake", byID[1].ScenicName)
	assert.Equal(t, "West Lake", byID[2].ScenicName)
	assert.Empty(t, byID[3].ScenicName)

	// the two lakeside records share one lookup
	assert.Equal(t, 1, scenics.calls)
}

func TestGetAccommodations_MissingScenicLeavesNameBlank(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.accommodations[1] = domain.Accommodation{ID: 1, Name: "Orphan Hotel", ScenicID: 42}

	page, err := svc.GetAccommodations(context.Background(), SearchFilter{})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Empty(t, page.Records[0].ScenicName)
}

func TestGetAccommodationByID(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.accommodations[7] = domain.Accommodation{ID: 7, Name: "Lakeside Hotel", ScenicID: 1}

	acc, err := svc.GetAccommodationByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Hotel", acc.Name)
	assert.Equal(t, "West Lake", acc.ScenicName)

	_, err = svc.GetAccommodationByID(context.Background(), 99)
	assert.EqualError(t, err, "accommodation not found")

	_, err = svc.GetAccommodationByID(context.Background(), 0)
	assert.EqualError(t, err, "invalid accommodation id")
}

func TestCreateAccommodation_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateAccommodation(ctx, &domain.Accommodation{})
	assert.EqualError(t, err, "accommodation name is required")

	_, err = svc.CreateAccommodation(ctx, &domain.Accommodation{Name: "Sky Hotel", StarLevel: 5.5})
	assert.EqualError(t, err, "star level must be between 0 and 5")

	_, err = svc.CreateAccommodation(ctx, &domain.Accommodation{Name: "Sky Hotel", ScenicID: 42})
	assert.EqualError(t, err, "scenic spot not found")
}

func TestCreateAccommodation(t *testing.T) {
	svc, repo, _ := newTestService()

	acc, err := svc.CreateAccommodation(context.Background(), &domain.Accommodation{
		Name:       "Lakeside Hotel",
		Type:       "hotel",
		ScenicID:   1,
		StarLevel:  4,
		PriceRange: "200-500",
	})
	require.NoError(t, err)
	assert.NotZero(t, acc.ID)
	assert.Contains(t, repo.accommodations, acc.ID)
}

func TestUpdateAccommodation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.accommodations[3] = domain.Accommodation{ID: 3, Name: "Old Name", StarLevel: 3}

	updated, err := svc.UpdateAccommodation(ctx, &domain.Accommodation{ID: 3, Name: "New Name", StarLevel: 4})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 4.0, updated.StarLevel)

	_, err = svc.UpdateAccommodation(ctx, &domain.Accommodation{Name: "No ID"})
	assert.EqualError(t, err, "accommodation ID is required")

	_, err = svc.UpdateAccommodation(ctx, &domain.Accommodation{ID: 99, Name: "Ghost"})
	assert.EqualError(t, err, "accommodation not found")
}

func TestDeleteAccommodation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.accommodations[5] = domain.Accommodation{ID: 5, Name: "Lakeside Hotel"}

	require.NoError(t, svc.DeleteAccommodation(ctx, 5))
	assert.NotContains(t, repo.accommodations, uint64(5))

	assert.EqualError(t, svc.DeleteAccommodation(ctx, 5), "accommodation not found")
	assert.EqualError(t, svc.DeleteAccommodation(ctx, 0), "invalid accommodation id")
}

func TestGetAccommodationTypes(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.accommodations[1] = domain.Accommodation{ID: 1, Name: "A", Type: "hotel"}
	repo.accommodations[2] = domain.Accommodation{ID: 2, Name: "B", Type: "hostel"}
	repo.accommodations[3] = domain.Accommodation{ID: 3, Name: "C", Type: "hotel"}

	types, err := svc.GetAccommodationTypes(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hotel", "hostel"}, types)
}
