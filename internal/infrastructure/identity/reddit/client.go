package reddit

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/platform/logging"
	"github.com/vdsgame/vds-api/internal/platform/resilience"
)

const Provider = "reddit"

var errRedditTransient = crerr.New("reddit transient failure")

type Config struct {
	ClientID       string
	ClientSecret   string
	RedirectURL    string
	AuthBaseURL    string
	APIBaseURL     string
	UserAgent      string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements the OAuth code exchange against reddit. Only the
// identity scope is requested; nothing beyond (id, name) is read.
type Client struct {
	http           *fasthttp.Client
	cfg            Config
	basicAuth      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = "https://www.reddit.com"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://oauth.reddit.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "vds-api/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg.AuthBaseURL = strings.TrimRight(cfg.AuthBaseURL, "/")
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	credentials := cfg.ClientID + ":" + cfg.ClientSecret

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		cfg:            cfg,
		basicAuth:      "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) AuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", c.cfg.ClientID)
	query.Set("response_type", "code")
	query.Set("state", state)
	query.Set("redirect_uri", c.cfg.RedirectURL)
	query.Set("duration", "permanent")
	query.Set("scope", "identity")

	return c.cfg.AuthBaseURL + "/api/v1/authorize?" + query.Encode()
}

func (c *Client) Exchange(ctx context.Context, code string) (player.Identity, string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "reddit circuit breaker rejected request", "state", c.breaker.State())
			return player.Identity{}, "", crerr.Wrap(err, "reddit is temporarily unavailable")
		}
	}

	token, err := c.fetchAccessToken(code)
	if err != nil {
		c.recordOutcome(err)
		return player.Identity{}, "", err
	}

	id, name, err := c.fetchIdentity(token)
	c.recordOutcome(err)
	if err != nil {
		return player.Identity{}, "", err
	}

	return player.Identity{Provider: Provider, SubjectID: id}, name, nil
}

func (c *Client) fetchAccessToken(code string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteString("grant_type=authorization_code&code=")
	buf.WriteString(url.QueryEscape(code))
	buf.WriteString("&redirect_uri=")
	buf.WriteString(url.QueryEscape(c.cfg.RedirectURL))

	req.SetRequestURI(c.cfg.AuthBaseURL + "/api/v1/access_token")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.basicAuth)
	req.Header.SetUserAgent(c.cfg.UserAgent)
	req.SetBody(buf.B)

	if err := c.http.DoTimeout(req, resp, c.cfg.Timeout); err != nil {
		return "", crerr.Wrapf(errRedditTransient, "request access token: %v", err)
	}
	if resp.StatusCode() >= 500 {
		return "", crerr.Wrapf(errRedditTransient, "access token request failed with status %d", resp.StatusCode())
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", crerr.Newf("access token request failed with status %d", resp.StatusCode())
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
	}
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", crerr.Wrap(err, "unmarshal access token response")
	}
	if strings.TrimSpace(decoded.AccessToken) == "" {
		return "", crerr.New("access token response is empty")
	}

	return decoded.AccessToken, nil
}

func (c *Client) fetchIdentity(accessToken string) (string, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.APIBaseURL + "/api/v1/me")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.SetUserAgent(c.cfg.UserAgent)

	if err := c.http.DoTimeout(req, resp, c.cfg.Timeout); err != nil {
		return "", "", crerr.Wrapf(errRedditTransient, "request identity: %v", err)
	}
	if resp.StatusCode() >= 500 {
		return "", "", crerr.Wrapf(errRedditTransient, "identity request failed with status %d", resp.StatusCode())
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", "", crerr.Newf("identity request failed with status %d", resp.StatusCode())
	}

	var decoded struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", "", crerr.Wrap(err, "unmarshal identity response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return "", "", crerr.New("identity response has no id")
	}

	return decoded.ID, decoded.Name, nil
}

func (c *Client) recordOutcome(err error) {
	if !c.circuitEnabled {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if crerr.Is(err, errRedditTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}
