package recommendations

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wellnest-app/wellness-api/internal/features/behavior"
)

// ValidateTrackInteraction checks the interaction payload beyond binding
func ValidateTrackInteraction(req *TrackInteractionRequest) error {
	if !behavior.IsValidAction(req.Action) {
		return errors.New("unknown action: " + req.Action)
	}
	return nil
}

// parseRecommendOptions reads the recommendation query parameters. Unknown or
// malformed values fall back to defaults rather than erroring.
func parseRecommendOptions(get func(string) string) RecommendOptions {
	opts := RecommendOptions{
		ContentType: get("type"),
		ABTestID:    get("abTestId"),
	}

	if v, err := strconv.Atoi(get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if get("includeViewed") == "true" {
		opts.IncludeViewed = true
	}
	if raw := get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				opts.Tags = append(opts.Tags, tag)
			}
		}
	}
	return opts
}
