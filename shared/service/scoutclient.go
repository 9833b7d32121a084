// shared/service/scoutclient.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/naijascout/scout-services/shared/api"
	"github.com/naijascout/scout-services/shared/models"
)

// Errors returned by ScoutClient, wrapping the underlying *api.HTTPError.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// ScoutClient is a client for the scout-service player API.
type ScoutClient struct {
	apiClient *api.Client
}

// NewScoutClient creates a client. baseURL includes the API prefix, e.g.
// "http://scout-service:5000/api".
func NewScoutClient(baseURL string) *ScoutClient {
	return &ScoutClient{
		apiClient: api.NewClient(baseURL, api.NewDefaultHTTPClient()),
	}
}

// ListOptions are the list query parameters. Zero values are omitted so the
// service defaults apply.
type ListOptions struct {
	Sort     string
	Order    string
	Limit    int
	Page     int
	Position string
	Status   string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Sort != "" {
		v.Set("sort", o.Sort)
	}
	if o.Order != "" {
		v.Set("order", o.Order)
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Position != "" {
		v.Set("position", o.Position)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	return v
}

type playerEnvelope struct {
	Success bool           `json:"success"`
	Data    *models.Player `json:"data"`
}

type statsEnvelope struct {
	Success bool               `json:"success"`
	Data    models.PlayerStats `json:"data"`
}

// ListPlayers fetches one page of players.
func (c *ScoutClient) ListPlayers(ctx context.Context, opts ListOptions) (*models.PlayerListResponse, error) {
	path := "/players"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}
	var resp models.PlayerListResponse
	if err := c.apiClient.Get(ctx, path, &resp); err != nil {
		return nil, wrapErr("list players", err)
	}
	return &resp, nil
}

// GetPlayer fetches a player by id.
func (c *ScoutClient) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var resp playerEnvelope
	if err := c.apiClient.Get(ctx, "/players/"+url.PathEscape(id), &resp); err != nil {
		return nil, wrapErr("get player "+id, err)
	}
	return resp.Data, nil
}

// CreatePlayer submits a new player. The service computes scout points.
func (c *ScoutClient) CreatePlayer(ctx context.Context, in *models.PlayerInput) (*models.Player, error) {
	var resp playerEnvelope
	if err := c.apiClient.Post(ctx, "/players", in, &resp); err != nil {
		return nil, wrapErr("create player", err)
	}
	return resp.Data, nil
}

// UpdatePlayer replaces the validated fields of a player.
func (c *ScoutClient) UpdatePlayer(ctx context.Context, id string, in *models.PlayerInput) (*models.Player, error) {
	var resp playerEnvelope
	if err := c.apiClient.Put(ctx, "/players/"+url.PathEscape(id), in, &resp); err != nil {
		return nil, wrapErr("update player "+id, err)
	}
	return resp.Data, nil
}

// DeletePlayer removes a player.
func (c *ScoutClient) DeletePlayer(ctx context.Context, id string) error {
	if err := c.apiClient.Delete(ctx, "/players/"+url.PathEscape(id), nil); err != nil {
		return wrapErr("delete player "+id, err)
	}
	return nil
}

// Overview fetches the aggregate statistics.
func (c *ScoutClient) Overview(ctx context.Context) (*models.PlayerStats, error) {
	var resp statsEnvelope
	if err := c.apiClient.Get(ctx, "/players/stats/overview", &resp); err != nil {
		return nil, wrapErr("get player stats", err)
	}
	return &resp.Data, nil
}

func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrPlayerNotFound, err)
	case errors.Is(err, api.ErrBadRequest):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidRequest, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
