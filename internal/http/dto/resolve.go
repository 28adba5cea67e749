package dto

import "chatops.app/courier/internal/service"

type ResolveRequest struct {
	Term string `json:"term" binding:"required,min=1,max=512"`
}

type MatchResponse struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type ResolveResponse struct {
	Matches []MatchResponse `json:"matches"`
}

func ToResolveResponse(matches []service.Match) ResolveResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchResponse{Name: m.Name, ID: m.ID})
	}
	return ResolveResponse{Matches: out}
}

type SuggestRequest struct {
	Text string `json:"text" binding:"required,min=1,max=4096"`
}

type SuggestResponse struct {
	Sentiment string   `json:"sentiment"`
	Replies   []string `json:"replies"`
}
