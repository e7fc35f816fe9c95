package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brandonyach/amsadmin/internal/ams/model"
)

// FetchAllUsers retrieves the full directory via /api/v1/usersearch.
func (c *Client) FetchAllUsers(ctx context.Context) ([]model.Person, error) {
	payload := map[string]any{"identification": []any{}}
	raw, err := c.fetch(ctx, "usersearch", "v1", payload, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []model.Person `json:"results"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding usersearch response: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, errors.New("no users returned from server")
	}
	return resp.Results, nil
}

// SavePerson applies one user update via /api/v2/person/save. The payload is
// the complete person object with the changed attribute already overlaid;
// saves are never cached.
func (c *Client) SavePerson(ctx context.Context, person map[string]any) error {
	if _, ok := person["id"]; !ok {
		return errors.New("missing required field 'id' in person payload")
	}

	raw, err := c.fetch(ctx, "person/save", "v2", map[string]any{"person": person}, false)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("no response from server")
	}
	return nil
}
