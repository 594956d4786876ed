package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"DipSnap/internal/model"
)

// TwelveDataFetcher implements Fetcher using the Twelve Data REST API.
type TwelveDataFetcher struct {
	APIKey string
	Client *http.Client

	baseURL string
	loc     *time.Location // America/New_York, for session detection
}

// NewTwelveDataFetcher creates a new fetcher with optional proxy support.
func NewTwelveDataFetcher(apiKey, proxyURL string) *TwelveDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &TwelveDataFetcher{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		baseURL: "https://api.twelvedata.com",
		loc:     loc,
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// tdSeries is the time_series response shape. Numeric fields arrive as strings.
type tdSeries struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// tdQuote is the quote endpoint response shape.
type tdQuote struct {
	Symbol        string      `json:"symbol"`
	Close         string      `json:"close"`
	PreviousClose string      `json:"previous_close"`
	IsMarketOpen  bool        `json:"is_market_open"`
	Code          json.Number `json:"code"`
	Message       string      `json:"message"`
}

func (f *TwelveDataFetcher) get(endpoint string, params url.Values, out interface{}) error {
	params.Set("apikey", f.APIKey)
	u := fmt.Sprintf("%s/%s?%s", f.baseURL, endpoint, params.Encode())

	resp, err := f.Client.Get(u)
	if err != nil {
		return fmt.Errorf("twelvedata fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("twelvedata read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("twelvedata: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("twelvedata decode: %w", err)
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func (f *TwelveDataFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", "1day")
	params.Set("outputsize", strconv.Itoa(days))
	params.Set("timezone", "America/New_York")

	var series tdSeries
	if err := f.get("time_series", params, &series); err != nil {
		return nil, err
	}
	if series.Status == "error" || len(series.Values) == 0 {
		msg := series.Message
		if msg == "" {
			msg = "no data returned"
		}
		return nil, fmt.Errorf("twelvedata api error for %s: %s", symbol, msg)
	}

	bars := make([]model.OHLCV, 0, len(series.Values))
	for _, v := range series.Values {
		ts, err := time.ParseInLocation("2006-01-02", v.Datetime, f.loc)
		if err != nil {
			continue
		}
		high, err1 := strconv.ParseFloat(v.High, 64)
		low, err2 := strconv.ParseFloat(v.Low, 64)
		closeP, err3 := strconv.ParseFloat(v.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("twelvedata malformed bar for %s at %s", symbol, v.Datetime)
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   parseFloat(v.Open),
			High:   high,
			Low:    low,
			Close:  closeP,
			Volume: parseFloat(v.Volume),
		})
	}

	// API returns newest first; callers expect oldest first.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *TwelveDataFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var q tdQuote
	if err := f.get("quote", params, &q); err != nil {
		return nil, err
	}
	if q.Message != "" {
		return nil, fmt.Errorf("twelvedata api error for %s: %s", symbol, q.Message)
	}

	// A payload that decodes but carries no usable price is malformed, not a
	// zero quote. Zero prices must never reach a snapshot.
	last, err := strconv.ParseFloat(q.Close, 64)
	if err != nil || last <= 0 {
		return nil, fmt.Errorf("twelvedata malformed quote for %s: close=%q", symbol, q.Close)
	}
	prevClose := last
	if q.PreviousClose != "" {
		prevClose, err = strconv.ParseFloat(q.PreviousClose, 64)
		if err != nil || prevClose <= 0 {
			return nil, fmt.Errorf("twelvedata malformed quote for %s: previous_close=%q", symbol, q.PreviousClose)
		}
	}

	change := last - prevClose
	changePct := 0.0
	if prevClose > 0 {
		changePct = change / prevClose * 100
	}

	now := time.Now().In(f.loc)
	return &model.Quote{
		Symbol:          symbol,
		LastPrice:       last,
		RegularClose:    prevClose,
		ChangeFromClose: change,
		ChangePct:       changePct,
		Timestamp:       now,
		IsExtendedHours: f.isExtendedHours(now) && !q.IsMarketOpen,
	}, nil
}

// isExtendedHours reports whether the given Eastern time falls outside the
// 9:30 AM - 4:00 PM regular session.
func (f *TwelveDataFetcher) isExtendedHours(now time.Time) bool {
	h, m := now.Hour(), now.Minute()
	return h < 9 || h >= 16 || (h == 9 && m < 30)
}
