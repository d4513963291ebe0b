package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/photobook/user-image-service/internal/domain/entity"
	"github.com/photobook/user-image-service/pkg/helpers"
)

const esTimeout = 3 * time.Second

// UserDocument is the search index representation of a user. It never holds the password.
type UserDocument struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Photo     *string   `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDocument(u *entity.User) UserDocument {
	return UserDocument{
		ID:        u.ID,
		UUID:      u.UUID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUser maps a search hit back onto the entity shape used by handlers
func (d UserDocument) ToUser() entity.User {
	id, _ := uuid.Parse(d.UUID)
	return entity.User{
		ID:        d.ID,
		UUID:      id,
		Username:  d.Username,
		Email:     d.Email,
		Role:      entity.Role(d.Role),
		Photo:     d.Photo,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	b, err := json.Marshal(toDocument(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.UUID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"uuid": u.UUID.String()})
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		helpers.LogWarn(s.Logger, "es index response error", nil, logrus.Fields{"status": res.Status(), "uuid": u.UUID.String()})
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// SearchUsers performs a multi_match search on username and email.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]UserDocument, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []UserDocument{}, nil
	}
	if size <= 0 {
		size = 10
	}
	if size > 50 {
		size = 50
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode es response: %w", err)
	}

	out := make([]UserDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
