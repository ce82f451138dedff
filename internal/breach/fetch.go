package breach

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
	"golang.org/x/net/context"
)

// Fetcher downloads breach password lists from one or more HTTPS
// sources and merges them into a single lowercased, deduplicated,
// sorted list.
type Fetcher struct {
	parallelism int
	urls        []string
	stat        *status
	http        *retryablehttp.Client

	mu     sync.Mutex
	merged map[string]struct{}
}

func NewFetcher(urls []string, parallelism int) *Fetcher {
	return &Fetcher{
		parallelism: parallelism,
		urls:        urls,
		http:        initHttpClient(),
		merged:      map[string]struct{}{},
	}
}

func initHttpClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// Too much garbage in the logs otherwise.
	client.Logger = nil

	// Retry Max 10 times on protocol errors. Any other are just reported and not retried.
	client.RetryMax = 10

	client.HTTPClient = &http.Client{
		Transport: &http.Transport{
			DisableCompression: false,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS13,
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		},
	}

	return client
}

// Run fetches every source and returns the merged entries, sorted.
// A source that cannot be fetched is logged and skipped; Run fails only
// when the worker pool itself cannot be created.
func (f *Fetcher) Run() ([]string, error) {
	threads := f.parallelism
	if threads < 2 {
		threads = runtime.NumCPU()
	}
	if threads > len(f.urls) {
		threads = len(f.urls)
	}

	// Bounded thread pool, same as the corpus downloader.
	fetchTasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return nil, err
	}
	defer fetchTasks.Close()

	log.Info().Msgf("fetching %d breach list source(s) with %d threads", len(f.urls), threads)
	f.stat = newStatus(len(f.urls))
	f.stat.BeginProgress()

	for _, url := range f.urls {
		if err = fetchTasks.Publish(f.fetchSource, url); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
	}

	fetchTasks.Wait()
	f.stat.Done()

	f.mu.Lock()
	entries := make([]string, 0, len(f.merged))
	for entry := range f.merged {
		entries = append(entries, entry)
	}
	f.mu.Unlock()

	sorty.SortSlice(entries)
	return entries, nil
}

func (f *Fetcher) fetchSource(url string) {
	data, err := f.download(url)
	if err != nil {
		log.Error().Err(err).Msgf("error fetching breach source %s", url)
		return
	}

	entries := parseEntries(data)
	f.mu.Lock()
	for _, entry := range entries {
		f.merged[strings.ToLower(entry)] = struct{}{}
	}
	f.mu.Unlock()

	f.stat.SourceFetched(len(entries))
}

func (f *Fetcher) download(url string) ([]byte, error) {
	timer := time.Now()
	req, err := retryablehttp.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "golang-breach-fetcher/1.0")

	res, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = res.Body.Close(); err != nil {
			log.Error().Err(err).Msgf("error closing response body for %s", url)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("source %s answered %s", url, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	f.stat.RequestComplete(time.Since(timer).Milliseconds())
	return body, nil
}

// parseEntries accepts either a JSON array of passwords (the on-disk
// format) or a plain newline-delimited list.
func parseEntries(data []byte) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		entries := make([]string, 0, len(items))
		for _, item := range items {
			var s string
			if err = json.Unmarshal(item, &s); err != nil {
				s = strings.TrimSpace(string(item))
			}
			if s != "" {
				entries = append(entries, s)
			}
		}
		return entries
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}
