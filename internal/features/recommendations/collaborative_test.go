package recommendations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
)

func TestJaccard_Symmetric(t *testing.T) {
	a := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	b := []primitive.ObjectID{a[0], a[1], primitive.NewObjectID(), primitive.NewObjectID()}

	require.Equal(t, Jaccard(a, b), Jaccard(b, a))
	require.Equal(t, 1.0, Jaccard(a, a))
	require.Equal(t, 0.0, Jaccard(a, nil))
}

func TestJaccard_SharedThreeOfFive(t *testing.T) {
	shared := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	a := append(append([]primitive.ObjectID{}, shared...), primitive.NewObjectID())
	b := append(append([]primitive.ObjectID{}, shared...), primitive.NewObjectID())

	// |{A,B,C}| / |{A,B,C,D,E}| = 3/5
	require.InDelta(t, 0.6, Jaccard(a, b), 1e-9)
}

// fakeNeighborSource serves canned interaction histories
type fakeNeighborSource struct {
	counts    map[primitive.ObjectID]int64
	histories map[primitive.ObjectID][]primitive.ObjectID
}

func (f *fakeNeighborSource) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	return f.counts[userID], nil
}

func (f *fakeNeighborSource) GetUserContentIDs(_ context.Context, userID primitive.ObjectID, _ int) ([]primitive.ObjectID, error) {
	return f.histories[userID], nil
}

func (f *fakeNeighborSource) GetUsersByContentIDs(_ context.Context, contentIDs []primitive.ObjectID, exclude primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error) {
	wanted := make(map[primitive.ObjectID]bool, len(contentIDs))
	for _, id := range contentIDs {
		wanted[id] = true
	}

	out := make(map[primitive.ObjectID][]primitive.ObjectID)
	for userID, history := range f.histories {
		if userID == exclude {
			continue
		}
		for _, id := range history {
			if wanted[id] {
				out[userID] = append(out[userID], id)
			}
		}
	}
	return out, nil
}

func TestBehaviorIndex_ColdStartHasNoNeighbors(t *testing.T) {
	cfg := config.DefaultEngine()
	me := primitive.NewObjectID()

	source := &fakeNeighborSource{
		counts:    map[primitive.ObjectID]int64{me: int64(cfg.ColdStartThreshold - 1)},
		histories: map[primitive.ObjectID][]primitive.ObjectID{me: {primitive.NewObjectID()}},
	}

	neighbors, err := NewBehaviorIndex(source, cfg).Neighbors(context.Background(), me)
	require.NoError(t, err)
	require.Empty(t, neighbors)
}

func TestBehaviorIndex_FindsSimilarUsers(t *testing.T) {
	cfg := config.DefaultEngine()
	me := primitive.NewObjectID()
	twin := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	passerby := primitive.NewObjectID()

	shared := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	mine := append(append([]primitive.ObjectID{}, shared...), primitive.NewObjectID())

	source := &fakeNeighborSource{
		counts: map[primitive.ObjectID]int64{me: 100},
		histories: map[primitive.ObjectID][]primitive.ObjectID{
			me:   mine,
			twin: append(append([]primitive.ObjectID{}, shared...), primitive.NewObjectID()),
			// Disjoint history: no overlap at all.
			stranger: {primitive.NewObjectID(), primitive.NewObjectID()},
			// Only two shared items: below the neighbor threshold.
			passerby: {shared[0], shared[1], primitive.NewObjectID()},
		},
	}

	neighbors, err := NewBehaviorIndex(source, cfg).Neighbors(context.Background(), me)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	require.Equal(t, twin, neighbors[0].UserID)
	require.InDelta(t, 0.6, neighbors[0].Similarity, 1e-9)
}

// fixedIndex returns a canned neighbor list
type fixedIndex struct{ neighbors []Neighbor }

func (f *fixedIndex) Neighbors(context.Context, primitive.ObjectID) ([]Neighbor, error) {
	return f.neighbors, nil
}

// fakeVoteSource serves canned positive events
type fakeVoteSource struct{ events []behavior.InteractionEvent }

func (f *fakeVoteSource) GetPositiveEventsByUsers(context.Context, []primitive.ObjectID, int) ([]behavior.InteractionEvent, error) {
	return f.events, nil
}

func TestCollaborativeScorer_VotesExcludeSeenContent(t *testing.T) {
	cfg := config.DefaultEngine()
	neighbor := primitive.NewObjectID()
	seenID := primitive.NewObjectID()
	freshID := primitive.NewObjectID()

	scorer := NewCollaborativeScorer(
		&fixedIndex{neighbors: []Neighbor{{UserID: neighbor, Similarity: 0.8}}},
		&fakeVoteSource{events: []behavior.InteractionEvent{
			{UserID: neighbor, ContentID: seenID, Action: behavior.ActionSave},
			{UserID: neighbor, ContentID: freshID, Action: behavior.ActionLike},
		}},
		cfg,
	)

	seen := map[primitive.ObjectID]bool{seenID: true}
	ranked, err := scorer.Score(context.Background(), primitive.NewObjectID(), seen, false, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.Equal(t, freshID, ranked[0].ContentID)

	// includeViewed brings the seen item back, and a save outranks a like.
	ranked, err = scorer.Score(context.Background(), primitive.NewObjectID(), seen, true, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, seenID, ranked[0].ContentID)
	require.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestCollaborativeScorer_SimilarityWeightsVotes(t *testing.T) {
	cfg := config.DefaultEngine()
	near := primitive.NewObjectID()
	distant := primitive.NewObjectID()
	likedByNear := primitive.NewObjectID()
	likedByDistant := primitive.NewObjectID()

	scorer := NewCollaborativeScorer(
		&fixedIndex{neighbors: []Neighbor{
			{UserID: near, Similarity: 0.9},
			{UserID: distant, Similarity: 0.2},
		}},
		&fakeVoteSource{events: []behavior.InteractionEvent{
			{UserID: near, ContentID: likedByNear, Action: behavior.ActionLike},
			{UserID: distant, ContentID: likedByDistant, Action: behavior.ActionLike},
		}},
		cfg,
	)

	ranked, err := scorer.Score(context.Background(), primitive.NewObjectID(), nil, false, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, likedByNear, ranked[0].ContentID)
	require.Equal(t, 1.0, ranked[0].Score) // normalized to the top vote
}

func TestCollaborativeScorer_ColdStartReturnsEmpty(t *testing.T) {
	scorer := NewCollaborativeScorer(&fixedIndex{}, &fakeVoteSource{}, config.DefaultEngine())

	ranked, err := scorer.Score(context.Background(), primitive.NewObjectID(), nil, false, 10)
	require.NoError(t, err)
	require.Empty(t, ranked)
}
