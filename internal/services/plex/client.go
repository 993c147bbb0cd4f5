package plex

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"plexart/internal/config"
	"plexart/internal/services"
)

const productName = "plexart"

// ErrUnauthorized is returned when the server rejects the token.
var ErrUnauthorized = errors.New("plex rejected the token")

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL          string
	Token            string
	UserAgent        string
	ClientIdentifier string
	Timeout          time.Duration
	HTTP             HTTPDoer
}

// Client is a read-only Plex metadata client.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	clientID  string
	http      HTTPDoer
}

// New constructs a client. A random client identifier is generated when none is given.
func New(opts Options) *Client {
	doer := opts.HTTP
	if doer == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	clientID := strings.TrimSpace(opts.ClientIdentifier)
	if clientID == "" {
		clientID = uuid.NewString()
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		token:     strings.TrimSpace(opts.Token),
		userAgent: opts.UserAgent,
		clientID:  clientID,
		http:      doer,
	}
}

// NewFromConfig constructs a client from the [plex] and [download] settings.
func NewFromConfig(cfg *config.Config) *Client {
	return New(Options{
		BaseURL:   cfg.Plex.URL,
		Token:     cfg.Plex.Token,
		UserAgent: cfg.Download.UserAgent,
		Timeout:   time.Duration(cfg.Plex.TimeoutSeconds) * time.Second,
	})
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Token returns the access token.
func (c *Client) Token() string { return c.token }

// Sections returns every library section sorted by id.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	nodes, err := c.fetch(ctx, "/library/sections")
	if err != nil {
		return nil, services.Wrap(services.ErrServerUnavailable, "plex", "list sections", "", err)
	}
	sections := make([]Section, 0, len(nodes))
	for _, node := range Filter(nodes, ElementDirectory) {
		if section, ok := node.section(); ok {
			sections = append(sections, section)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })
	return sections, nil
}

// Section returns the section with the given id.
func (c *Client) Section(ctx context.Context, id int) (Section, error) {
	sections, err := c.Sections(ctx)
	if err != nil {
		return Section{}, err
	}
	for _, section := range sections {
		if section.ID == id {
			return section, nil
		}
	}
	return Section{}, services.Wrap(services.ErrServerUnavailable, "plex", "find section", fmt.Sprintf("library id %d not found", id), nil)
}

// SectionItems returns the top-level items of a section.
func (c *Client) SectionItems(ctx context.Context, id int) ([]Node, error) {
	nodes, err := c.fetch(ctx, "/library/sections/"+strconv.Itoa(id)+"/all")
	if err != nil {
		return nil, services.Wrap(services.ErrServerUnavailable, "plex", "list section items", fmt.Sprintf("library id %d", id), err)
	}
	return nodes, nil
}

// Metadata returns the metadata container for ratingKey.
func (c *Client) Metadata(ctx context.Context, ratingKey string) ([]Node, error) {
	nodes, err := c.fetch(ctx, "/library/metadata/"+url.PathEscape(ratingKey))
	if err != nil {
		return nil, services.Wrap(services.ErrNodeMetadataUnavailable, "plex", "metadata", ratingKey, err)
	}
	return nodes, nil
}

// Children returns the children of ratingKey: seasons of a show, episodes of
// a season, albums of an artist, or tracks of an album.
func (c *Client) Children(ctx context.Context, ratingKey string) ([]Node, error) {
	nodes, err := c.fetch(ctx, "/library/metadata/"+url.PathEscape(ratingKey)+"/children")
	if err != nil {
		return nil, services.Wrap(services.ErrNodeMetadataUnavailable, "plex", "children", ratingKey, err)
	}
	return nodes, nil
}

// CheckAuth verifies that the server is reachable and accepts the token.
func (c *Client) CheckAuth(ctx context.Context) error {
	if c.baseURL == "" {
		return services.Wrap(services.ErrConfiguration, "plex", "check auth", "PLEX_URL not configured", nil)
	}
	_, err := c.fetch(ctx, "/library/sections")
	return err
}

func (c *Client) fetch(ctx context.Context, path string) ([]Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	query := req.URL.Query()
	query.Set("X-Plex-Token", c.token)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/xml")
	applyStandardHeaders(req, c.clientID, c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("plex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("plex GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var container mediaContainer
	if err := xml.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return container.Nodes, nil
}

func applyStandardHeaders(req *http.Request, clientIdentifier, userAgent string) {
	req.Header.Set("X-Plex-Client-Identifier", clientIdentifier)
	req.Header.Set("X-Plex-Product", productName)
	req.Header.Set("X-Plex-Platform", runtime.GOOS)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
}
