package recommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/abtest"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
	"github.com/wellnest-app/wellness-api/internal/features/content"
	"github.com/wellnest-app/wellness-api/internal/features/profile"
	"github.com/wellnest-app/wellness-api/internal/features/promotions"
	"github.com/wellnest-app/wellness-api/internal/pkg/cache"
	"github.com/wellnest-app/wellness-api/internal/pkg/logger"
)

const (
	defaultLimit     = 10
	maxLimit         = 50
	weightsCacheTTL  = 10 * time.Minute
	fallbackCacheTTL = 5 * time.Minute
	historyWindow    = 50 // recommendation events consulted for algorithm selection
)

// Narrow views of the feature repositories. The concrete repositories satisfy
// them; tests substitute fakes.

type contentStore interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]content.ContentItem, error)
	FindCandidates(ctx context.Context, query content.CandidateQuery) ([]content.ContentItem, error)
	GetPopular(ctx context.Context, contentType string, limit int) ([]content.ContentItem, error)
	IncrementCounter(ctx context.Context, id primitive.ObjectID, field string, delta int64) error
}

type behaviorStore interface {
	Insert(ctx context.Context, event *behavior.InteractionEvent) error
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]behavior.InteractionEvent, error)
	GetUserContentIDs(ctx context.Context, userID primitive.ObjectID, limit int) ([]primitive.ObjectID, error)
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]behavior.InteractionEvent, error)
}

type profileStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*profile.UserProfile, error)
}

type interestStore interface {
	GetTopTags(ctx context.Context, userID primitive.ObjectID, limit int) ([]string, error)
	IncrementTags(ctx context.Context, userID primitive.ObjectID, tags []string) error
}

type promotionStore interface {
	ListActive(ctx context.Context, now time.Time) ([]promotions.SeasonalPromotion, error)
}

type abTestStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*abtest.ABTest, error)
}

type eventLog interface {
	Insert(ctx context.Context, event *RecommendationEvent) error
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]RecommendationEvent, error)
}

// Service orchestrates a recommendation request end to end. It is designed to
// never hard-fail: every data problem degrades to defaults or to the
// popularity fallback, and the caller always gets a valid (possibly empty)
// list.
type Service struct {
	contents  contentStore
	behaviors behaviorStore
	profiles  profileStore
	interests interestStore
	promos    promotionStore
	tests     abTestStore
	events    eventLog

	learner *Learner
	scorer  *ContentScorer
	collab  *CollaborativeScorer
	blender *Blender
	booster *SeasonalBooster

	cache *cache.Cache
	cfg   *config.Engine
	now   func() time.Time
}

// NewService wires the engine together from its stores and tunables
func NewService(
	contents contentStore,
	behaviors behaviorStore,
	profiles profileStore,
	interests interestStore,
	promos promotionStore,
	tests abTestStore,
	events eventLog,
	collab *CollaborativeScorer,
	c *cache.Cache,
	cfg *config.Engine,
) *Service {
	return &Service{
		contents:  contents,
		behaviors: behaviors,
		profiles:  profiles,
		interests: interests,
		promos:    promos,
		tests:     tests,
		events:    events,
		learner:   NewLearner(cfg),
		scorer:    NewContentScorer(cfg),
		collab:    collab,
		blender:   NewBlender(cfg),
		booster:   NewSeasonalBooster(cfg),
		cache:     c,
		cfg:       cfg,
		now:       time.Now,
	}
}

// requestSnapshot holds everything fetched up front for one request. Fields
// stay zero-valued when their fetch fails; the pipeline treats that as "no
// signal", never as an error.
type requestSnapshot struct {
	events       []behavior.InteractionEvent
	prof         *profile.UserProfile
	interestTags []string
	promos       []promotions.SeasonalPromotion
	seenIDs      []primitive.ObjectID
}

// GetPersonalizedRecommendations runs the full pipeline for a user and
// returns the ranked list along with the algorithm that produced it. It does
// not return errors: any scorer failure degrades to the popularity fallback.
func (s *Service) GetPersonalizedRecommendations(ctx context.Context, userID primitive.ObjectID, opts RecommendOptions) ([]ScoredContent, string) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	opts.ContentType = normalizeContentType(opts.ContentType)

	snap := s.fetchSnapshot(ctx, userID)

	algorithm := s.selectAlgorithm(ctx, userID, opts.ABTestID)
	weights := s.personalizedWeights(ctx, userID, snap.events)
	if weights == nil {
		weights = DefaultWeights(s.cfg.DefaultContentWeight)
	}

	seen := make(map[primitive.ObjectID]bool, len(snap.seenIDs))
	for _, id := range snap.seenIDs {
		seen[id] = true
	}

	contentList, collabList, scorerErr := s.runScorers(ctx, userID, algorithm, opts, snap, weights, seen, limit)

	blended := s.blender.Blend(contentList, collabList, weights.ContentWeight, limit)
	blended = s.blender.Diversify(blended, weights.DiversityWeight, limit)

	var segments []string
	var region string
	if snap.prof != nil {
		segments, region = snap.prof.Segments, snap.prof.Region
	}
	blended = s.booster.Apply(blended, snap.promos, segments, region, s.now())

	if len(blended) == 0 && scorerErr != nil {
		logger.Warn("recommendation scorers failed for user %s, serving fallback: %v", userID.Hex(), scorerErr)
		return s.GetFallbackRecommendations(ctx, opts.ContentType, limit), algorithm
	}

	s.logRecommendation(userID, algorithm, opts.ABTestID, blended)
	return blended, algorithm
}

// fetchSnapshot fans out the independent reads for one request. Individual
// failures are logged and leave their field empty.
func (s *Service) fetchSnapshot(ctx context.Context, userID primitive.ObjectID) *requestSnapshot {
	snap := &requestSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.behaviors.GetRecentByUser(gctx, userID, s.cfg.MaxLearningEvents)
		if err != nil {
			logger.Warn("behavior history fetch failed for user %s: %v", userID.Hex(), err)
			return nil
		}
		snap.events = events
		return nil
	})
	g.Go(func() error {
		prof, err := s.profiles.GetByUserID(gctx, userID)
		if err != nil {
			logger.Warn("profile fetch failed for user %s: %v", userID.Hex(), err)
			return nil
		}
		snap.prof = prof
		return nil
	})
	g.Go(func() error {
		tags, err := s.interests.GetTopTags(gctx, userID, 10)
		if err != nil {
			logger.Warn("interest fetch failed for user %s: %v", userID.Hex(), err)
			return nil
		}
		snap.interestTags = tags
		return nil
	})
	g.Go(func() error {
		promos, err := s.promos.ListActive(gctx, s.now())
		if err != nil {
			logger.Warn("promotion fetch failed: %v", err)
			return nil
		}
		snap.promos = promos
		return nil
	})
	g.Go(func() error {
		ids, err := s.behaviors.GetUserContentIDs(gctx, userID, s.cfg.HistoryLimit)
		if err != nil {
			logger.Warn("seen-content fetch failed for user %s: %v", userID.Hex(), err)
			return nil
		}
		snap.seenIDs = ids
		return nil
	})
	_ = g.Wait()

	return snap
}

// runScorers executes the path(s) the selected algorithm requires. Both paths
// run concurrently for hybrid. A path failure is returned for the caller's
// fallback decision but never aborts the other path.
func (s *Service) runScorers(
	ctx context.Context,
	userID primitive.ObjectID,
	algorithm string,
	opts RecommendOptions,
	snap *requestSnapshot,
	weights *PersonalizedWeights,
	seen map[primitive.ObjectID]bool,
	limit int,
) (contentList, collabList []ScoredContent, firstErr error) {
	runContent := algorithm == AlgorithmContentBased || algorithm == AlgorithmHybrid
	runCollab := algorithm == AlgorithmCollaborative || algorithm == AlgorithmHybrid

	var contentErr, collabErr error
	g, gctx := errgroup.WithContext(ctx)

	if runContent {
		g.Go(func() error {
			list, err := s.scoreContentBased(gctx, opts, snap, weights, seen, limit)
			if err != nil {
				contentErr = err
				return nil
			}
			contentList = list
			return nil
		})
	}
	if runCollab {
		g.Go(func() error {
			list, err := s.scoreCollaborative(gctx, userID, opts, seen, limit)
			if err != nil {
				collabErr = err
				return nil
			}
			collabList = list
			return nil
		})
	}
	_ = g.Wait()

	if contentErr != nil {
		firstErr = contentErr
	} else if collabErr != nil {
		firstErr = collabErr
	}

	// A collaborative-only request with no neighbors degrades to the
	// content-based path rather than returning nothing.
	if algorithm == AlgorithmCollaborative && len(collabList) == 0 && collabErr == nil {
		list, err := s.scoreContentBased(ctx, opts, snap, weights, seen, limit)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		contentList = list
	}

	return contentList, collabList, firstErr
}

func (s *Service) scoreContentBased(
	ctx context.Context,
	opts RecommendOptions,
	snap *requestSnapshot,
	weights *PersonalizedWeights,
	seen map[primitive.ObjectID]bool,
	limit int,
) ([]ScoredContent, error) {
	query := content.CandidateQuery{
		Type:  opts.ContentType,
		Tags:  opts.Tags,
		Limit: limit * s.cfg.OversampleFactor,
	}
	if !opts.IncludeViewed {
		for id := range seen {
			query.ExcludeIDs = append(query.ExcludeIDs, id)
		}
	}

	candidates, err := s.contents.FindCandidates(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("candidate fetch: %w", err)
	}

	return s.scorer.Score(candidates, snap.prof, snap.interestTags, weights, s.now(), 2*limit), nil
}

func (s *Service) scoreCollaborative(
	ctx context.Context,
	userID primitive.ObjectID,
	opts RecommendOptions,
	seen map[primitive.ObjectID]bool,
	limit int,
) ([]ScoredContent, error) {
	ranked, err := s.collab.Score(ctx, userID, seen, opts.IncludeViewed, limit)
	if err != nil {
		return nil, fmt.Errorf("collaborative scoring: %w", err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(ranked))
	scoreByID := make(map[primitive.ObjectID]float64, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.ContentID)
		scoreByID[r.ContentID] = r.Score
	}

	items, err := s.contents.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("collaborative candidate resolve: %w", err)
	}

	var list []ScoredContent
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		if opts.ContentType != "" && opts.ContentType != "all" && item.Type != opts.ContentType {
			continue
		}
		list = append(list, ScoredContent{Content: item, Score: scoreByID[item.ID]})
	}
	sortByScore(list)
	return list, nil
}

// personalizedWeights returns the user's learned weights, consulting the
// short-lived cache first. A nil return means "no personalization".
func (s *Service) personalizedWeights(ctx context.Context, userID primitive.ObjectID, events []behavior.InteractionEvent) *PersonalizedWeights {
	if len(events) < s.cfg.MinInteractions {
		return nil
	}

	key := "weights:" + userID.Hex()
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached PersonalizedWeights
		if json.Unmarshal(data, &cached) == nil {
			return &cached
		}
	}

	ids := make([]primitive.ObjectID, 0, len(events))
	seen := make(map[primitive.ObjectID]bool, len(events))
	for _, e := range events {
		if !seen[e.ContentID] {
			seen[e.ContentID] = true
			ids = append(ids, e.ContentID)
		}
	}

	items, err := s.contents.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("weight learning content fetch failed for user %s: %v", userID.Hex(), err)
		return nil
	}
	byID := make(map[primitive.ObjectID]*content.ContentItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	weights := s.learner.Learn(events, byID)
	if weights != nil {
		if data, err := json.Marshal(weights); err == nil {
			_ = s.cache.Set(ctx, key, data, weightsCacheTTL)
		}
	}
	return weights
}

// selectAlgorithm picks the scorer path: A/B assignment when a test id is
// supplied, historical performance otherwise, hybrid as the final default.
func (s *Service) selectAlgorithm(ctx context.Context, userID primitive.ObjectID, abTestID string) string {
	if abTestID != "" {
		if algo := s.abTestAlgorithm(ctx, userID, abTestID); algo != "" {
			return algo
		}
	}

	if algo := s.bestHistoricalAlgorithm(ctx, userID); algo != "" {
		return algo
	}
	return AlgorithmHybrid
}

func (s *Service) abTestAlgorithm(ctx context.Context, userID primitive.ObjectID, abTestID string) string {
	testID, err := primitive.ObjectIDFromHex(abTestID)
	if err != nil {
		return ""
	}

	test, err := s.tests.GetByID(ctx, testID)
	if err != nil || test == nil {
		return ""
	}

	variant := abtest.AssignVariant(test, userID.Hex(), s.now())
	if variant == nil {
		return ""
	}
	return normalizeAlgorithm(variant.Algorithm)
}

// bestHistoricalAlgorithm scores each previously-used algorithm by how the
// user reacted to its recommendations. Any read failure means no opinion.
func (s *Service) bestHistoricalAlgorithm(ctx context.Context, userID primitive.ObjectID) string {
	recs, err := s.events.GetRecentByUser(ctx, userID, historyWindow)
	if err != nil || len(recs) == 0 {
		return ""
	}

	// Content ids each algorithm recommended, and when the window opened.
	recommendedBy := make(map[string]map[primitive.ObjectID]bool)
	totals := make(map[string]int)
	oldest := recs[0].CreatedAt
	for _, rec := range recs {
		if rec.CreatedAt.Before(oldest) {
			oldest = rec.CreatedAt
		}
		totals[rec.Algorithm]++
		set := recommendedBy[rec.Algorithm]
		if set == nil {
			set = make(map[primitive.ObjectID]bool)
			recommendedBy[rec.Algorithm] = set
		}
		for _, id := range rec.ContentIDs {
			set[id] = true
		}
	}

	reactions, err := s.behaviors.GetByUserSince(ctx, userID, oldest)
	if err != nil {
		return ""
	}

	net := make(map[string]int)
	for _, e := range reactions {
		for algo, set := range recommendedBy {
			if !set[e.ContentID] {
				continue
			}
			if e.Action == behavior.ActionDislike {
				net[algo]--
			} else if behavior.IsPositive(e.Action) {
				net[algo]++
			}
		}
	}

	best, bestScore := "", 0.0
	for algo, total := range totals {
		if total == 0 {
			continue
		}
		score := float64(net[algo]) / float64(total)
		if best == "" || score > bestScore {
			best, bestScore = algo, score
		}
	}
	return normalizeAlgorithm(best)
}

// logRecommendation appends the outcome to the event log without blocking the
// response path. Failures are diagnostics only.
func (s *Service) logRecommendation(userID primitive.ObjectID, algorithm, abTestID string, list []ScoredContent) {
	if len(list) == 0 {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(list))
	for _, sc := range list {
		ids = append(ids, sc.Content.ID)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.events.Insert(ctx, &RecommendationEvent{
			UserID:     userID,
			Algorithm:  algorithm,
			ContentIDs: ids,
			ABTestID:   abTestID,
		})
		if err != nil {
			logger.Warn("recommendation log insert failed for user %s: %v", userID.Hex(), err)
		}
	}()
}

// TrackInteraction records a behavior event and updates the derived signals:
// interest-tag counters for positive actions and the content's own counters.
func (s *Service) TrackInteraction(ctx context.Context, userID primitive.ObjectID, req TrackInteractionRequest) (*behavior.InteractionEvent, error) {
	contentID, err := primitive.ObjectIDFromHex(req.ContentID)
	if err != nil {
		return nil, fmt.Errorf("invalid content id")
	}

	item, err := s.contents.GetByIDs(ctx, []primitive.ObjectID{contentID})
	if err != nil {
		return nil, err
	}
	if len(item) == 0 {
		return nil, fmt.Errorf("content not found")
	}

	event := &behavior.InteractionEvent{
		UserID:         userID,
		ContentID:      contentID,
		Action:         req.Action,
		DurationSec:    req.DurationSec,
		CompletionRate: req.CompletionRate,
	}
	if err := s.behaviors.Insert(ctx, event); err != nil {
		return nil, err
	}

	// Derived updates are best-effort: the event of record is already
	// stored, and the counters tolerate racy increments.
	if behavior.IsPositive(req.Action) {
		if err := s.interests.IncrementTags(ctx, userID, item[0].Tags); err != nil {
			logger.Warn("interest increment failed for user %s: %v", userID.Hex(), err)
		}
	}
	switch req.Action {
	case behavior.ActionView:
		_ = s.contents.IncrementCounter(ctx, contentID, "viewCount", 1)
	case behavior.ActionLike:
		_ = s.contents.IncrementCounter(ctx, contentID, "likeCount", 1)
	}

	_ = s.cache.Delete(ctx, "weights:"+userID.Hex())

	return event, nil
}

// GetFallbackRecommendations returns the popularity ranking: active content
// by view count, then recency. Scores are view counts normalized to [0,1].
func (s *Service) GetFallbackRecommendations(ctx context.Context, contentType string, limit int) []ScoredContent {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	contentType = normalizeContentType(contentType)

	key := fmt.Sprintf("fallback:%s:%d", contentType, limit)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []ScoredContent
		if json.Unmarshal(data, &cached) == nil {
			return cached
		}
	}

	items, err := s.contents.GetPopular(ctx, contentType, limit)
	if err != nil {
		logger.Error("popularity fallback fetch failed: %v", err)
		return []ScoredContent{}
	}

	var max float64
	for _, item := range items {
		if v := float64(item.ViewCount); v > max {
			max = v
		}
	}

	list := make([]ScoredContent, 0, len(items))
	for _, item := range items {
		score := 0.0
		if max > 0 {
			score = float64(item.ViewCount) / max
		}
		list = append(list, ScoredContent{Content: item, Score: score})
	}

	if data, err := json.Marshal(list); err == nil {
		_ = s.cache.Set(ctx, key, data, fallbackCacheTTL)
	}
	return list
}

// normalizeAlgorithm maps unknown algorithm names onto hybrid
func normalizeAlgorithm(algorithm string) string {
	switch algorithm {
	case AlgorithmContentBased, AlgorithmCollaborative, AlgorithmHybrid:
		return algorithm
	}
	return ""
}

// normalizeContentType maps unknown content types onto "all"
func normalizeContentType(contentType string) string {
	if contentType == "" {
		return "all"
	}
	for _, t := range content.ValidTypes {
		if t == contentType {
			return contentType
		}
	}
	return "all"
}
