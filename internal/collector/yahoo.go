package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketPanel/internal/model"

	"golang.org/x/time/rate"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooOptions configures YahooSource.
type YahooOptions struct {
	BaseURL     string
	ProxyURL    string
	Timeout     time.Duration // per request
	MinInterval time.Duration // minimum spacing between requests
	AutoAdjust  bool          // scale OHLC by adjusted close
}

// YahooSource implements Source using the Yahoo Finance chart API.
type YahooSource struct {
	BaseURL    string
	Client     *http.Client
	AutoAdjust bool
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewYahooSource creates a Yahoo Finance source with optional proxy support.
func NewYahooSource(opts YahooOptions) *YahooSource {
	transport := &http.Transport{}
	if opts.ProxyURL != "" {
		if u, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYahooBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	return &YahooSource{
		BaseURL: opts.BaseURL,
		Client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		AutoAdjust: opts.AutoAdjust,
		limiter:    rate.NewLimiter(limit, 1),
		now:        time.Now,
	}
}

func (f *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
// Price arrays contain nulls for non-trading rows.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				GMTOffset            int    `json:"gmtoffset"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// at returns the i-th value of a nullable column.
func at(col []*float64, i int) (float64, bool) {
	if i >= len(col) || col[i] == nil {
		return 0, false
	}
	return *col[i], true
}

// FetchDaily returns daily bars from start (inclusive) up to today.
func (f *YahooSource) FetchDaily(ctx context.Context, symbol string, start time.Time) (model.PriceSeries, error) {
	if symbol == "" {
		return model.PriceSeries{}, fmt.Errorf("yahoo: empty symbol")
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo rate limit: %w", err)
	}

	// Exchange-local midnight can fall on the previous UTC day, so ask for one
	// extra day and filter after the dates are localized.
	period1 := model.NaiveDate(start).AddDate(0, 0, -1).Unix()
	period2 := f.now().Unix()
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%2Csplits",
		f.BaseURL, url.PathEscape(symbol), period1, period2)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %.200s", resp.StatusCode, string(body))
	}

	bars, err := f.parseChart(body)
	if err != nil {
		return model.PriceSeries{}, err
	}
	bars = Normalize(bars, start)
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: f.now()}, nil
}

// parseChart flattens the nested chart document into bars dated in the
// exchange's local calendar.
func (f *YahooSource) parseChart(body []byte) ([]model.OHLCV, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: missing quote block")
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if f.AutoAdjust && len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	loc := time.FixedZone(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := at(quote.Close, i)
		if !ok {
			continue // holidays and halted sessions come back as nulls
		}
		o, _ := at(quote.Open, i)
		h, _ := at(quote.High, i)
		l, _ := at(quote.Low, i)
		v, _ := at(quote.Volume, i)

		if a, ok := at(adj, i); ok && c != 0 {
			ratio := a / c
			o, h, l, c = o*ratio, h*ratio, l*ratio, a
		}

		bars = append(bars, model.OHLCV{
			Time:   model.NaiveDate(time.Unix(ts, 0).In(loc)),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	return bars, nil
}
