package recommendations

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
)

// Neighbor is another user and how similar their interaction history is
type Neighbor struct {
	UserID     primitive.ObjectID
	Similarity float64
}

// SimilarityIndex finds the users most similar to a given user. The behavior
// repo backs the default implementation; a precomputed index can replace it
// behind the same interface.
type SimilarityIndex interface {
	Neighbors(ctx context.Context, userID primitive.ObjectID) ([]Neighbor, error)
}

// neighborSource is the slice of the behavior repository the index reads
type neighborSource interface {
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	GetUserContentIDs(ctx context.Context, userID primitive.ObjectID, limit int) ([]primitive.ObjectID, error)
	GetUsersByContentIDs(ctx context.Context, contentIDs []primitive.ObjectID, exclude primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error)
}

type behaviorIndex struct {
	source neighborSource
	cfg    *config.Engine
}

// NewBehaviorIndex builds a SimilarityIndex over raw interaction events
func NewBehaviorIndex(source neighborSource, cfg *config.Engine) SimilarityIndex {
	return &behaviorIndex{source: source, cfg: cfg}
}

// Neighbors returns similar users sorted by similarity descending. Cold-start
// users (too few events) get no neighbors, which pushes the caller onto the
// content-based path.
func (x *behaviorIndex) Neighbors(ctx context.Context, userID primitive.ObjectID) ([]Neighbor, error) {
	count, err := x.source.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count < int64(x.cfg.ColdStartThreshold) {
		return nil, nil
	}

	myIDs, err := x.source.GetUserContentIDs(ctx, userID, x.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}
	if len(myIDs) == 0 {
		return nil, nil
	}

	// One indexed pass finds every candidate and their overlap with us.
	overlaps, err := x.source.GetUsersByContentIDs(ctx, myIDs, userID)
	if err != nil {
		return nil, err
	}

	var neighbors []Neighbor
	for otherID, shared := range overlaps {
		if len(shared) < x.cfg.MinSharedContent {
			continue
		}

		theirIDs, err := x.source.GetUserContentIDs(ctx, otherID, x.cfg.HistoryLimit)
		if err != nil {
			continue
		}

		sim := Jaccard(myIDs, theirIDs)
		if sim > x.cfg.MinSimilarity {
			neighbors = append(neighbors, Neighbor{UserID: otherID, Similarity: sim})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID.Hex() < neighbors[j].UserID.Hex()
	})
	if len(neighbors) > x.cfg.MaxNeighbors {
		neighbors = neighbors[:x.cfg.MaxNeighbors]
	}
	return neighbors, nil
}

// Jaccard computes |intersection| / |union| of two content id sets
func Jaccard(a, b []primitive.ObjectID) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inA := make(map[primitive.ObjectID]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}

	intersection := 0
	union := len(inA)
	seenB := make(map[primitive.ObjectID]bool, len(b))
	for _, id := range b {
		if seenB[id] {
			continue
		}
		seenB[id] = true
		if inA[id] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

// ScoredID is a content id with an accumulated collaborative score
type ScoredID struct {
	ContentID primitive.ObjectID
	Score     float64
}

// voteSource is the slice of the behavior repository the scorer reads
type voteSource interface {
	GetPositiveEventsByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit int) ([]behavior.InteractionEvent, error)
}

// CollaborativeScorer ranks content by weighted votes from similar users
type CollaborativeScorer struct {
	index  SimilarityIndex
	source voteSource
	cfg    *config.Engine
}

func NewCollaborativeScorer(index SimilarityIndex, source voteSource, cfg *config.Engine) *CollaborativeScorer {
	return &CollaborativeScorer{index: index, source: source, cfg: cfg}
}

// Score accumulates neighbor votes onto content the user has not seen and
// returns up to 2x limit candidates for blending, scores normalized to [0,1].
// A cold-start user yields an empty list, not an error.
func (s *CollaborativeScorer) Score(ctx context.Context, userID primitive.ObjectID, seen map[primitive.ObjectID]bool, includeViewed bool, limit int) ([]ScoredID, error) {
	neighbors, err := s.index.Neighbors(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	simByUser := make(map[primitive.ObjectID]float64, len(neighbors))
	neighborIDs := make([]primitive.ObjectID, 0, len(neighbors))
	for _, n := range neighbors {
		simByUser[n.UserID] = n.Similarity
		neighborIDs = append(neighborIDs, n.UserID)
	}

	events, err := s.source.GetPositiveEventsByUsers(ctx, neighborIDs, s.cfg.MaxLearningEvents)
	if err != nil {
		return nil, err
	}

	scores := make(map[primitive.ObjectID]float64)
	for _, e := range events {
		if !includeViewed && seen[e.ContentID] {
			continue
		}
		scores[e.ContentID] += s.cfg.ActionWeight(e.Action) * simByUser[e.UserID]
	}
	if len(scores) == 0 {
		return nil, nil
	}

	var max float64
	for _, v := range scores {
		if v > max {
			max = v
		}
	}

	ranked := make([]ScoredID, 0, len(scores))
	for id, score := range scores {
		if max > 0 {
			score /= max
		}
		ranked = append(ranked, ScoredID{ContentID: id, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ContentID.Hex() < ranked[j].ContentID.Hex()
	})
	if n := 2 * limit; n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
