package service

import (
	"encoding/base64"

	"regstats/database/model"
	"regstats/util/chart"
)

// RoleCount is one histogram entry.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Stats is the result of one aggregation pass: computed fresh per request,
// never cached.
type Stats struct {
	Total       int           `json:"total"`
	Roles       []RoleCount   `json:"roles"`
	Users       []*model.User `json:"users"`
	ChartBase64 string        `json:"chart"`
}

type StatsService struct {
	userService UserService

	// Renderer may be set to substitute the chart backend; nil uses the
	// default horizontal bar renderer.
	Renderer chart.Renderer
}

// Compute loads the full user set, builds the role histogram preserving
// first-seen order, and renders it to an inline base64 PNG. An empty store
// yields total 0, an empty histogram and a valid empty chart.
func (s *StatsService) Compute() (*Stats, error) {
	users, err := s.userService.GetAllUsers()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, user := range users {
		if _, seen := counts[user.Role]; !seen {
			order = append(order, user.Role)
		}
		counts[user.Role]++
	}

	roles := make([]RoleCount, 0, len(order))
	labels := make([]string, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, role := range order {
		roles = append(roles, RoleCount{Role: role, Count: counts[role]})
		labels = append(labels, role)
		values = append(values, float64(counts[role]))
	}

	renderer := s.Renderer
	if renderer == nil {
		renderer = chart.NewBarRenderer()
	}
	png, err := renderer.RenderBarChart(labels, values)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:       len(users),
		Roles:       roles,
		Users:       users,
		ChartBase64: base64.StdEncoding.EncodeToString(png),
	}, nil
}
