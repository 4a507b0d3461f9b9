package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/common"
)

const (
	directorColumns = "id,first_name,last_name,auth_user_id,created_at"
	messageColumns  = "id,message_type,content,scheduled_at,created_at,director_id,actor_id," +
		"child:actors(first_name,last_name),message_media(media_url,media_type)"
	categoryColumns = "id,name,emoji"
)

// RESTDataClient queries the BaaS through its PostgREST endpoint.
type RESTDataClient struct {
	r      requester
	apiKey string
	tokens TokenSource
}

// NewRESTDataClient builds a client for baseURL (the project URL, without
// /rest/v1). tokens may be nil, in which case the api key is used as bearer.
func NewRESTDataClient(baseURL, apiKey string, tokens TokenSource, timeout time.Duration) *RESTDataClient {
	return &RESTDataClient{r: newRequester(baseURL, timeout), apiKey: apiKey, tokens: tokens}
}

func (c *RESTDataClient) headers(ctx context.Context) http.Header {
	bearer := c.apiKey
	if c.tokens != nil {
		if t := c.tokens.AccessToken(ctx); t != "" {
			bearer = t
		}
	}
	h := http.Header{}
	h.Set(common.APIKeyHeaderName, c.apiKey)
	h.Set(common.AuthorizationHeaderName, "Bearer "+bearer)
	return h
}

// call performs the request and decodes a 2xx body into out.
func (c *RESTDataClient) call(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	resp, err := c.r.do(ctx, method, path, query, body, c.headers(ctx))
	if err != nil {
		return err
	}

	if !resp.ok() {
		msg := serverMessage(resp.body)
		if msg == "" {
			msg = statusMessage(resp.status)
		}
		kind := KindBusiness
		if resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden {
			kind = KindUnauthorized
		}
		return &Error{Kind: kind, Message: msg, Status: resp.status}
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return decodeError(err)
	}
	return nil
}

func (c *RESTDataClient) DirectorByAuthUserID(ctx context.Context, authUserID string) (*models.Director, error) {
	q := url.Values{}
	q.Set("select", directorColumns)
	q.Set("auth_user_id", "eq."+authUserID)
	q.Set("limit", "1")

	var rows []models.Director
	if err := c.call(ctx, http.MethodGet, "/rest/v1/directors", q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFoundError("director")
	}
	return &rows[0], nil
}

func (c *RESTDataClient) MessagesByDirector(ctx context.Context, directorID string) ([]models.Message, error) {
	q := url.Values{}
	q.Set("select", messageColumns)
	q.Set("director_id", "eq."+directorID)
	q.Set("order", "scheduled_at.desc")

	var rows []models.Message
	if err := c.call(ctx, http.MethodGet, "/rest/v1/messages", q, nil, &rows); err != nil {
		return nil, err
	}
	models.SortByScheduledDesc(rows)
	return rows, nil
}

func (c *RESTDataClient) Categories(ctx context.Context) ([]models.Category, error) {
	q := url.Values{}
	q.Set("select", categoryColumns)
	q.Set("order", "name.asc")

	var rows []models.Category
	if err := c.call(ctx, http.MethodGet, "/rest/v1/categories", q, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTDataClient) SaveDirectorCategories(ctx context.Context, directorID string, categoryIDs []string) (*models.CategorySaveResult, error) {
	body := map[string]any{"director_id": directorID, "category_ids": categoryIDs}

	var res models.CategorySaveResult
	if err := c.call(ctx, http.MethodPost, "/rest/v1/rpc/save_director_categories", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
