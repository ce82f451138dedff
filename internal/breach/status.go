package breach

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type status struct {
	sourcesFetched   uint64
	entriesFetched   uint64
	requests         uint64
	requestTimeTotal uint64
	start            time.Time
	ticker           *time.Ticker
	progress         chan bool
	totalSources     int
}

func newStatus(totalSources int) *status {
	return &status{
		start:        time.Now(),
		ticker:       time.NewTicker(5 * time.Second),
		progress:     make(chan bool),
		totalSources: totalSources,
	}
}

// BeginProgress reports fetch progress every 5 seconds until Done.
func (s *status) BeginProgress() {
	go func() {
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				total := float64(s.totalSources)
				log.Info().Msgf("%.2f%% breach sources fetched", (float64(atomic.LoadUint64(&s.sourcesFetched))*100)/total)
			}
		}
	}()
}

func (s *status) SourceFetched(entries int) {
	atomic.AddUint64(&s.sourcesFetched, 1)
	atomic.AddUint64(&s.entriesFetched, uint64(entries))
}

func (s *status) RequestComplete(millis int64) {
	atomic.AddUint64(&s.requestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.requests, 1)
}

func (s *status) Done() {
	s.progress <- true
	s.ticker.Stop()

	p := message.NewPrinter(language.English)
	log.Info().Msgf("fetched %s entries from %d source(s) in %v",
		p.Sprintf("%d", atomic.LoadUint64(&s.entriesFetched)), s.totalSources, time.Since(s.start))
	if requests := atomic.LoadUint64(&s.requests); requests > 0 {
		average := float64(atomic.LoadUint64(&s.requestTimeTotal)) / float64(requests)
		log.Debug().Msgf("made %s requests. Average response time %.2f ms", p.Sprintf("%d", requests), average)
	}
}
