package recommendations

import "time"

// Traditional Chinese medicine splits the year into five seasons; late summer
// (长夏) sits between summer and autumn. The mapping is fixed by calendar
// month, not by solar terms.
type Season string

const (
	SeasonSpring     Season = "spring"      // Mar-May
	SeasonSummer     Season = "summer"      // Jun-Jul
	SeasonLateSummer Season = "late_summer" // Aug
	SeasonAutumn     Season = "autumn"      // Sep-Nov
	SeasonWinter     Season = "winter"      // Dec-Feb
)

// seasonTags maps a season to the content tags counted as "in season".
var seasonTags = map[Season][]string{
	SeasonSpring:     {"春季", "spring", "养肝", "升发"},
	SeasonSummer:     {"夏季", "summer", "养心", "清热"},
	SeasonLateSummer: {"长夏", "late_summer", "养脾", "祛湿"},
	SeasonAutumn:     {"秋季", "autumn", "养肺", "润燥"},
	SeasonWinter:     {"冬季", "winter", "养肾", "温补"},
}

// oppositeSeason pairs the seasons whose content is least relevant now.
// Late summer has no opposite.
var oppositeSeason = map[Season]Season{
	SeasonSpring: SeasonAutumn,
	SeasonAutumn: SeasonSpring,
	SeasonSummer: SeasonWinter,
	SeasonWinter: SeasonSummer,
}

// CurrentSeason returns the TCM season covering the given time
func CurrentSeason(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July:
		return SeasonSummer
	case time.August:
		return SeasonLateSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// SeasonTags returns the tag set associated with a season
func SeasonTags(s Season) []string {
	return seasonTags[s]
}

// matchesSeason reports whether any of the tags belongs to the season's tag set
func matchesSeason(tags []string, s Season) bool {
	for _, seasonTag := range seasonTags[s] {
		for _, tag := range tags {
			if tag == seasonTag {
				return true
			}
		}
	}
	return false
}

// seasonOf returns the season a tag belongs to, or "" for non-seasonal tags
func seasonOf(tag string) Season {
	for season, tags := range seasonTags {
		for _, t := range tags {
			if t == tag {
				return season
			}
		}
	}
	return ""
}
