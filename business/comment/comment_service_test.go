package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myTourGuide/domain"
)

type fakeCommentRepo struct {
	comments map[uint64]domain.Comment
	nextID   uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint64]domain.Comment{}, nextID: 1}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uint64) (domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return domain.Comment{}, errors.New("comment not found")
	}
	return comment, nil
}

func (f *fakeCommentRepo) FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range f.comments {
		if comment.ScenicID == scenicID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range f.comments {
		if comment.UserID == userID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.comments[id]; !ok {
		return errors.New("comment not found")
	}
	delete(f.comments, id)
	return nil
}

type fakeSpots struct{ known map[uint64]bool }

func (f fakeSpots) FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error) {
	if !f.known[id] {
		return domain.ScenicSpot{}, errors.New("scenic spot not found")
	}
	return domain.ScenicSpot{ID: id}, nil
}

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(newFakeCommentRepo(), fakeSpots{known: map[uint64]bool{10: true}})

	_, err := svc.CreateComment(context.Background(), &domain.Comment{ScenicID: 10, Rating: 5})
	assert.EqualError(t, err, "user ID is required")

	_, err = svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, Rating: 5})
	assert.EqualError(t, err, "scenic ID is required")

	_, err = svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, ScenicID: 10, Rating: 0})
	assert.EqualError(t, err, "rating must be between 1 and 5")

	_, err = svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, ScenicID: 10, Rating: 6})
	assert.EqualError(t, err, "rating must be between 1 and 5")

	_, err = svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, ScenicID: 99, Rating: 4})
	assert.EqualError(t, err, "scenic spot not found")

	created, err := svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, ScenicID: 10, Rating: 4, Content: "great view"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestGetCommentsByScenicID(t *testing.T) {
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo, fakeSpots{known: map[uint64]bool{10: true, 11: true}})

	for _, c := range []domain.Comment{
		{UserID: 1, ScenicID: 10, Rating: 5},
		{UserID: 2, ScenicID: 10, Rating: 3},
		{UserID: 1, ScenicID: 11, Rating: 4},
	} {
		comment := c
		_, err := svc.CreateComment(context.Background(), &comment)
		require.NoError(t, err)
	}

	comments, err := svc.GetCommentsByScenicID(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	mine, err := svc.GetCommentsByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo, fakeSpots{known: map[uint64]bool{10: true}})

	created, err := svc.CreateComment(context.Background(), &domain.Comment{UserID: 1, ScenicID: 10, Rating: 4})
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), created.ID, 2)
	assert.EqualError(t, err, "comment does not belong to user")

	require.NoError(t, svc.DeleteComment(context.Background(), created.ID, 1))

	err = svc.DeleteComment(context.Background(), created.ID, 1)
	assert.EqualError(t, err, "comment not found")
}
