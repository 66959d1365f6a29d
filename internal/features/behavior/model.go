package behavior

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interaction actions
const (
	ActionView     = "view"
	ActionClick    = "click"
	ActionLike     = "like"
	ActionComment  = "comment"
	ActionComplete = "complete"
	ActionSave     = "save"
	ActionShare    = "share"
	ActionDislike  = "dislike"
)

// ValidActions lists every accepted interaction action
var ValidActions = []string{
	ActionView, ActionClick, ActionLike, ActionComment,
	ActionComplete, ActionSave, ActionShare, ActionDislike,
}

// InteractionEvent is an append-only behavior record. It is the source of
// truth for both similarity computation and weight learning and is never
// mutated after insert.
type InteractionEvent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ContentID      primitive.ObjectID `bson:"contentId" json:"contentId"`
	Action         string             `bson:"action" json:"action"`
	DurationSec    int                `bson:"durationSec,omitempty" json:"durationSec,omitempty"`
	CompletionRate float64            `bson:"completionRate,omitempty" json:"completionRate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsValidAction reports whether the action is a known kind
func IsValidAction(action string) bool {
	for _, a := range ValidActions {
		if a == action {
			return true
		}
	}
	return false
}

// IsPositive reports whether the action signals interest
func IsPositive(action string) bool {
	return action != ActionDislike && action != ""
}

// IsStrongPositive reports whether the action is a strong interest signal
// used for collaborative voting.
func IsStrongPositive(action string) bool {
	switch action {
	case ActionLike, ActionSave, ActionShare:
		return true
	}
	return false
}
