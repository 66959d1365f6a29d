package content

import (
	"errors"
	"strings"
)

// ValidateCreateRequest checks type and normalizes tags
func ValidateCreateRequest(req *CreateContentRequest) error {
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if !isValidType(req.Type) {
		return errors.New("type must be one of: article, recipe, quiz, tutorial, video")
	}

	req.Tags = normalizeTags(req.Tags)
	if len(req.Tags) == 0 {
		return errors.New("at least one tag is required")
	}

	for _, slot := range req.TimeSlots {
		if !isValidTimeSlot(slot) {
			return errors.New("timeSlots must be: morning, afternoon, evening, or night")
		}
	}

	return nil
}

// ValidateListQuery applies browse defaults
func ValidateListQuery(query *ListContentQuery) error {
	if query.Limit < 1 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		return errors.New("limit must be between 1 and 100")
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Type != "" && query.Type != "all" && !isValidType(query.Type) {
		// Unknown types fall back to "all" rather than rejecting
		query.Type = "all"
	}
	if query.Tag != "" {
		query.Tag = strings.TrimSpace(query.Tag)
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

func isValidTimeSlot(slot string) bool {
	switch slot {
	case "morning", "afternoon", "evening", "night":
		return true
	}
	return false
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
