package matchsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated connection for one user. It is safe for
// concurrent use.
type Session struct {
	client      *SDKClient
	userID      string
	accessToken string
}

// UserID returns the id of the logged in user.
func (s *Session) UserID() string { return s.userID }

// AccessToken returns the bearer token the session sends.
func (s *Session) AccessToken() string { return s.accessToken }

// AddCrush records interest in name for the session's user.
func (s *Session) AddCrush(ctx context.Context, name string) (*Interest, error) {
	buf, err := json.Marshal(CrushRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/crush", bytes.NewReader(buf), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var interest Interest
	if err := decodeJSON(resp, &interest, http.StatusCreated); err != nil {
		return nil, err
	}
	return &interest, nil
}

// ListCrushes returns the session user's crushes, oldest first.
func (s *Session) ListCrushes(ctx context.Context) ([]Interest, error) {
	return s.ListCrushesOf(ctx, s.userID)
}

// ListCrushesOf lists the crushes of userID. The server only allows a user
// to read their own list.
func (s *Session) ListCrushesOf(ctx context.Context, userID string) ([]Interest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/crush/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var list []Interest
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list, nil
}

// GetMatches returns the session user's reciprocated crushes.
func (s *Session) GetMatches(ctx context.Context) ([]string, error) {
	return s.GetMatchesOf(ctx, s.userID)
}

// GetMatchesOf returns the matches of userID. The server only allows a user
// to read their own matches.
func (s *Session) GetMatchesOf(ctx context.Context, userID string) ([]string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/matches/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var matches MatchesResponse
	if err := decodeJSON(resp, &matches, http.StatusOK); err != nil {
		return nil, err
	}
	return matches.Matches, nil
}

// Logout tells the server the session is over. Issued tokens stay valid
// until they expire; callers should drop the Session afterwards.
func (s *Session) Logout(ctx context.Context) (*MessageResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/logout", nil, nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}
