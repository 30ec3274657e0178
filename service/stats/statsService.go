package statssvc

import (
	"context"
	"math"
	"regexp"
	"strconv"

	statsrepo "github.com/rameez-hub125/treasure-to-trash/repository/stats"
)

// Dashboard aggregates shown on the public landing page and the admin
// dashboard.
type Dashboard struct {
	TotalUsers          int     `json:"total_users"`
	TotalReports        int     `json:"total_reports"`
	PendingReports      int     `json:"pending_reports"`
	TotalWasteCollected float64 `json:"total_waste_collected"`
	TokensDistributed   int     `json:"tokens_distributed"`
	CO2Offset           float64 `json:"co2_offset"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct{ r statsrepo.Repo }

func New(r statsrepo.Repo) Service { return &service{r} }

var amountRe = regexp.MustCompile(`\d+(\.\d+)?`)

// 0.5 kg of CO2 offset per kg collected; a display estimate, not a
// certified figure.
const co2PerKg = 0.5

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	raw, err := s.r.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	var collected float64
	for _, amt := range raw.CollectedAmounts {
		if m := amountRe.FindString(amt); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				collected += f
			}
		}
	}

	return &Dashboard{
		TotalUsers:          raw.TotalUsers,
		TotalReports:        raw.TotalReports,
		PendingReports:      raw.PendingReports,
		TotalWasteCollected: round1(collected),
		TokensDistributed:   raw.TokensEarned,
		CO2Offset:           round1(collected * co2PerKg),
	}, nil
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
