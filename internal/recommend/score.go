package recommend

import (
	"strconv"
	"strings"

	"github.com/iliyamo/festival-program/internal/model"
)

// NeutralScore is assigned to films without any usable rating.
const NeutralScore = 50.0

// FallbackReason is used when no rating or award is notable.
const FallbackReason = "Festival Selection"

const (
	awardBonus    = 10.0
	prestigeBonus = 10.0
	reasonSep     = " · "
	maxBadges     = 2
)

// prestigeFragments are matched case-insensitively against award text.
var prestigeFragments = []string{
	"cannes", "berlin", "berlinale", "venice", "sundance", "toronto", "tiff",
	"locarno", "rotterdam", "busan", "golden bear", "golden lion", "palme",
	"oscar", "academy award",
}

// FilmScore is the ranking weight of a film plus a short explanation.
// Score is not bounded to 0–100 once award bonuses are added.
type FilmScore struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// ratingSource describes how one external rating is normalized to 0–100
// and when it is worth a badge.
type ratingSource struct {
	value   func(model.Film) string
	scale   float64
	notable float64
	badge   func(raw float64) string
}

var ratingSources = []ratingSource{
	{
		value:   func(f model.Film) string { return f.IMDbRating },
		scale:   10,
		notable: 7.5,
		badge:   func(v float64) string { return "IMDb " + formatNumber(v) },
	},
	{
		value:   func(f model.Film) string { return f.RottenTomatoes },
		scale:   1,
		notable: 90,
		badge:   func(v float64) string { return "RT " + formatNumber(v) + "%" },
	},
	{
		value:   func(f model.Film) string { return f.Metacritic },
		scale:   1,
		notable: 80,
		badge:   func(v float64) string { return "MC " + formatNumber(v) },
	},
	{
		value:   func(f model.Film) string { return f.Letterboxd },
		scale:   20,
		notable: 3.7,
		badge:   func(v float64) string { return "LB " + formatNumber(v) },
	},
}

// ScoreFilm averages the film's available ratings on a 0–100 scale and
// adds award bonuses.  Ratings that cannot be parsed are ignored rather
// than counted as zero.
func ScoreFilm(f model.Film) FilmScore {
	var (
		sum    float64
		count  int
		badges []string
	)
	for _, src := range ratingSources {
		raw, ok := parseRating(src.value(f))
		if !ok {
			continue
		}
		sum += raw * src.scale
		count++
		if raw >= src.notable {
			badges = append(badges, src.badge(raw))
		}
	}

	score := NeutralScore
	if count > 0 {
		score = sum / float64(count)
	}

	if awards := strings.TrimSpace(f.Awards); awards != "" {
		score += awardBonus
		if isPrestigious(awards) {
			score += prestigeBonus
			badges = append(badges, "Award Winner")
		}
	}

	reason := FallbackReason
	if len(badges) > 0 {
		if len(badges) > maxBadges {
			badges = badges[:maxBadges]
		}
		reason = strings.Join(badges, reasonSep)
	}
	return FilmScore{Score: score, Reason: reason}
}

func isPrestigious(awards string) bool {
	lower := strings.ToLower(awards)
	for _, frag := range prestigeFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// parseRating reads the numerator of a rating string such as "7.8",
// "94%", "82/100" or "3.9/5".
func parseRating(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return leadingNumber(s)
}

// leadingNumber parses the longest decimal prefix of s, ignoring
// surrounding whitespace.  It reports false when s does not start with a
// number.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
