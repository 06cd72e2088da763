package diario

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/primera-data/primera/internal/domain/news"
	"github.com/primera-data/primera/internal/platform/logging"
	"github.com/primera-data/primera/internal/platform/resilience"
)

const (
	matchdayCount = 38
	userAgent     = "primera-pipeline/1.0"
	maxJitter     = 400 * time.Millisecond
)

// Scraper walks a season's matchday listing pages, follows every chronicle
// link and returns one Article per chronicle. Requests run through a rate
// limiter with random jitter and a circuit breaker so a struggling site is
// left alone.
type Scraper struct {
	client  *fasthttp.Client
	baseURL string
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	jitter  func() time.Duration
}

type ScraperConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	Logger     *logging.Logger
}

func NewScraper(cfg ScraperConfig) *Scraper {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Scraper{
		client: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		breaker: resilience.NewCircuitBreaker(5, 30*time.Second, 1),
		logger:  logger,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

// Season scrapes all 38 matchdays of a season. A failing article is logged
// and skipped; a failing matchday page aborts the season.
func (s *Scraper) Season(ctx context.Context, season string) ([]news.Article, error) {
	var articles []news.Article
	for matchday := 1; matchday <= matchdayCount; matchday++ {
		found, err := s.matchday(ctx, season, matchday)
		if err != nil {
			return nil, errors.Wrapf(err, "matchday %d of season %s", matchday, season)
		}
		articles = append(articles, found...)
	}
	return articles, nil
}

func (s *Scraper) matchday(ctx context.Context, season string, matchday int) ([]news.Article, error) {
	page, err := s.fetch(ctx, s.matchdayURL(season, matchday))
	if err != nil {
		return nil, errors.Wrap(err, "listing page")
	}
	chronicles := parseChronicles(page.B, s.baseURL)
	bytebufferpool.Put(page)

	articles := make([]news.Article, 0, len(chronicles))
	for _, c := range chronicles {
		article, err := s.article(ctx, c, matchday)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable article",
				"url", c.URL, "matchday", matchday, "error", err)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *Scraper) article(ctx context.Context, c chronicle, matchday int) (news.Article, error) {
	page, err := s.fetch(ctx, c.URL)
	if err != nil {
		return news.Article{}, err
	}
	headline, subheader := parseArticle(page.B)
	bytebufferpool.Put(page)

	if headline == "" {
		return news.Article{}, errors.New("article has no headline")
	}
	return news.Article{
		URL:         c.URL,
		Headline:    headline,
		Subheader:   subheader,
		DateFromURL: dateFromURL(c.URL),
		ContextText: c.Context,
		Round:       matchday,
	}, nil
}

// fetch returns the page body in a pooled buffer; the caller must return it
// with bytebufferpool.Put.
func (s *Scraper) fetch(ctx context.Context, url string) (*bytebufferpool.ByteBuffer, error) {
	if err := s.breaker.Allow(); err != nil {
		return nil, err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		s.breaker.RecordSuccess()
		return nil, err
	}
	time.Sleep(s.jitter())

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetUserAgent(userAgent)

	if err := s.client.Do(req, resp); err != nil {
		s.breaker.RecordFailure()
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		s.breaker.RecordFailure()
		return nil, errors.Newf("fetch %s: status %d", url, resp.StatusCode())
	}
	s.breaker.RecordSuccess()

	buf := bytebufferpool.Get()
	_, _ = buf.Write(resp.Body())
	return buf, nil
}

// matchdayURL builds the listing page path. A season labeled by its starting
// year spans two calendar years in the path.
func (s *Scraper) matchdayURL(season string, matchday int) string {
	startYear, _ := strconv.Atoi(season)
	return fmt.Sprintf("%s/resultados/futbol/primera/%d_%d/jornada/regular_a_%d",
		s.baseURL, startYear, startYear+1, matchday)
}
