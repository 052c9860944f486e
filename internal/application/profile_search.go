package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
)

// indexProfile mirrors the latest profile into Elasticsearch. Search is a
// convenience on top of the primary store, so failures are logged and
// swallowed.
func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"user":     p.User.Hex(),
		"status":   p.Status,
		"skills":   p.Skills,
		"bio":      p.Bio,
		"company":  p.Company,
		"location": p.Location,
	}
	if p.Owner != nil {
		doc["name"] = p.Owner.Name
	}
	b, err := json.Marshal(doc)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.User.Hex()).Warn("es index doc marshal failed")
		return
	}
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: p.User.Hex(),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.User.Hex()).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.User.Hex()).Warn("es index response error")
	}
}

func (s *ProfileService) removeFromIndex(ctx context.Context, userID primitive.ObjectID) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: userID.Hex()}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID.Hex()).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchProfiles performs a multi_match query over the indexed profile
// fields and returns the raw hit sources.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"skills^2", "status", "bio", "company", "location", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
