package weather

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sells-group/yield-advisor/internal/model"
)

// HistoryDays is the length of a synthetic observation series.
const HistoryDays = 365

type climate int

const (
	climateSummer climate = iota
	climateMonsoon
	climateWinter
)

// span is an inclusive [min, max] range for uniform draws.
type span [2]float64

type seasonRanges struct {
	tempMax  span
	tempMin  span
	rainfall span
	humidity span
	solar    span
}

var ranges = map[climate]seasonRanges{
	climateWinter:  {tempMax: span{20, 28}, tempMin: span{8, 15}, rainfall: span{0, 5}, humidity: span{50, 70}, solar: span{12, 18}},
	climateMonsoon: {tempMax: span{30, 36}, tempMin: span{24, 28}, rainfall: span{0, 50}, humidity: span{75, 95}, solar: span{14, 20}},
	climateSummer:  {tempMax: span{32, 42}, tempMin: span{20, 27}, rainfall: span{0, 10}, humidity: span{40, 60}, solar: span{18, 25}},
}

var (
	monsoonConditions = []string{"Heavy Rain", "Light Rain", "Thunderstorm", "Cloudy", "Overcast"}
	dryConditions     = []string{"Sunny", "Partly Cloudy", "Clear", "Hazy"}
)

func climateOf(m time.Month) climate {
	switch m {
	case time.November, time.December, time.January, time.February:
		return climateWinter
	case time.June, time.July, time.August, time.September, time.October:
		return climateMonsoon
	default:
		return climateSummer
	}
}

// synthesizer draws seasonal weather. rand.Source is not safe for concurrent
// use, so every draw holds mu.
type synthesizer struct {
	mu  sync.Mutex
	src rand.Source
	rnd *rand.Rand
}

func newSynthesizer(src rand.Source) *synthesizer {
	return &synthesizer{src: src, rnd: rand.New(src)}
}

func (s *synthesizer) draw(r span) float64 {
	u := distuv.Uniform{Min: r[0], Max: r[1], Src: s.src}
	return round1(u.Rand())
}

// observations returns HistoryDays days ending today, most recent first.
func (s *synthesizer) observations(district string, now time.Time) []model.WeatherObservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := startOfDay(now)
	out := make([]model.WeatherObservation, 0, HistoryDays)
	for i := range HistoryDays {
		date := today.AddDate(0, 0, -i)
		r := ranges[climateOf(date.Month())]
		tmax := s.draw(r.tempMax)
		tmin := s.draw(r.tempMin)
		out = append(out, model.WeatherObservation{
			District:        district,
			Date:            date,
			TempMaxC:        tmax,
			TempMinC:        tmin,
			TempAvgC:        (tmax + tmin) / 2,
			RainfallMm:      s.draw(r.rainfall),
			HumidityPercent: s.draw(r.humidity),
			SolarRadiation:  s.draw(r.solar),
		})
	}
	return out
}

// forecast returns days entries starting tomorrow.
func (s *synthesizer) forecast(district string, now time.Time, days int) []model.WeatherForecast {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := startOfDay(now)
	out := make([]model.WeatherForecast, 0, days)
	for i := 1; i <= days; i++ {
		date := today.AddDate(0, 0, i)
		c := climateOf(date.Month())
		r := ranges[c]
		words := dryConditions
		if c == climateMonsoon {
			words = monsoonConditions
		}
		out = append(out, model.WeatherForecast{
			District:        district,
			Date:            date,
			TempMaxC:        s.draw(r.tempMax),
			TempMinC:        s.draw(r.tempMin),
			RainfallMm:      s.draw(r.rainfall),
			HumidityPercent: s.draw(r.humidity),
			Condition:       words[s.rnd.IntN(len(words))],
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
