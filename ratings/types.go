// Package ratings implements the rating kernel: the Wilson-score
// lower-bound computation, band classification, and chart assembly
// described in §4.1 of the specification. It has no knowledge of
// storage, transport, or caching — it is a pure function of the
// aggregate vote counts it is given.
package ratings

// Category is one of the closed set of catalog tags a snap can belong
// to. Serialized on the wire in kebab-case.
type Category int

const (
	CategoryUnspecified Category = iota
	CategoryArtAndDesign
	CategoryBookAndReference
	CategoryDevelopment
	CategoryDevicesAndIot
	CategoryEducation
	CategoryEntertainment
	CategoryFeatured
	CategoryFinance
	CategoryGames
	CategoryHealthAndFitness
	CategoryMusicAndAudio
	CategoryNewsAndWeather
	CategoryPersonalisation
	CategoryPhotoAndVideo
	CategoryProductivity
	CategoryScience
	CategorySecurity
	CategoryServerAndCloud
	CategorySocial
	CategoryUtilities
)

var categoryKebab = map[Category]string{
	CategoryArtAndDesign:     "art-and-design",
	CategoryBookAndReference: "book-and-reference",
	CategoryDevelopment:      "development",
	CategoryDevicesAndIot:    "devices-and-iot",
	CategoryEducation:        "education",
	CategoryEntertainment:    "entertainment",
	CategoryFeatured:         "featured",
	CategoryFinance:          "finance",
	CategoryGames:            "games",
	CategoryHealthAndFitness: "health-and-fitness",
	CategoryMusicAndAudio:    "music-and-audio",
	CategoryNewsAndWeather:   "news-and-weather",
	CategoryPersonalisation:  "personalisation",
	CategoryPhotoAndVideo:    "photo-and-video",
	CategoryProductivity:     "productivity",
	CategoryScience:          "science",
	CategorySecurity:         "security",
	CategoryServerAndCloud:   "server-and-cloud",
	CategorySocial:           "social",
	CategoryUtilities:        "utilities",
}

var kebabCategory = func() map[string]Category {
	m := make(map[string]Category, len(categoryKebab))
	for cat, kebab := range categoryKebab {
		m[kebab] = cat
	}
	return m
}()

// String renders the category in its wire (kebab-case) form.
func (c Category) String() string {
	if s, ok := categoryKebab[c]; ok {
		return s
	}
	return ""
}

// ParseCategory matches a kebab-case string to a Category, case
// insensitively. ok is false for an empty string or any string that
// doesn't match a known tag.
func ParseCategory(s string) (cat Category, ok bool) {
	cat, ok = kebabCategory[lowerASCII(s)]
	return
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Timeframe restricts a chart/summary query to a recent window.
type Timeframe int

const (
	TimeframeUnspecified Timeframe = iota
	TimeframeWeek
	TimeframeMonth
)

var timeframeWire = map[Timeframe]string{
	TimeframeUnspecified: "UNSPECIFIED",
	TimeframeWeek:        "WEEK",
	TimeframeMonth:       "MONTH",
}

var wireTimeframe = func() map[string]Timeframe {
	m := make(map[string]Timeframe, len(timeframeWire))
	for tf, s := range timeframeWire {
		m[lowerASCII(s)] = tf
	}
	return m
}()

// String renders the timeframe in its wire form.
func (t Timeframe) String() string {
	if s, ok := timeframeWire[t]; ok {
		return s
	}
	return timeframeWire[TimeframeUnspecified]
}

// ParseTimeframe matches a wire string to a Timeframe, case
// insensitively. Any unrecognized value collapses to Unspecified,
// per §4.7 (GetChart never rejects a bad timeframe).
func ParseTimeframe(s string) Timeframe {
	if tf, ok := wireTimeframe[lowerASCII(s)]; ok {
		return tf
	}
	return TimeframeUnspecified
}

// RatingsBand is the human-facing classification of a rating derived
// from the Wilson lower bound, per the table in §4.1.
type RatingsBand int

const (
	BandInsufficientVotes RatingsBand = iota
	BandVeryPoor
	BandPoor
	BandNeutral
	BandGood
	BandVeryGood
)

func (b RatingsBand) String() string {
	switch b {
	case BandVeryGood:
		return "very_good"
	case BandGood:
		return "good"
	case BandNeutral:
		return "neutral"
	case BandPoor:
		return "poor"
	case BandVeryPoor:
		return "very_poor"
	default:
		return "insufficient_votes"
	}
}

// VoteSummary is the derived, unpersisted aggregate §3 describes.
type VoteSummary struct {
	SnapID        string
	TotalVotes    uint64
	PositiveVotes uint64
}

// Rating is a VoteSummary plus its computed band.
type Rating struct {
	SnapID      string
	TotalVotes  uint64
	RatingsBand RatingsBand
	SnapName    string
}

// ChartData is one ranked entry in a Chart.
type ChartData struct {
	SnapID     string
	RawRating  float64
	TotalVotes uint64
	Band       RatingsBand
}

// Chart is the ordered top-N list §3 describes.
type Chart struct {
	Timeframe Timeframe
	Category  *Category
	Entries   []ChartData
}

// MaxChartEntries is the fixed truncation point for any Chart, per §4.1.
const MaxChartEntries = 20
