// Package officer binds scored leads to the nearest sales contact.
package officer

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/model"
)

// MaxRadiusKM is the largest nearest-officer distance considered a usable
// assignment; beyond it the state fallback applies.
const MaxRadiusKM = 500

// HQFallback is returned when neither proximity nor state matching finds an
// officer.
var HQFallback = model.Assignment{
	Name:    "Contact Head Office",
	Role:    "General Contact",
	Phone:   "N/A",
	Email:   "info@hpcl.in",
	Address: "HPCL Head Office, Mumbai",
	State:   "Maharashtra",
}

// Service assigns officers by great-circle proximity with state and HQ
// fallbacks.
type Service struct {
	officers []model.Officer
	resolver *geo.Resolver
}

// NewService builds a Service over the officer directory.
func NewService(officers []model.Officer, resolver *geo.Resolver) *Service {
	return &Service{officers: officers, resolver: resolver}
}

// Assign finds the contact for a lead location. The chain is:
// nearest officer within MaxRadiusKM, then first officer in the same state
// (distance unknown), then the HQ placeholder.
func (s *Service) Assign(locationText, state string) model.Assignment {
	coord, ok := s.resolver.Resolve(locationText, "", state)
	if !ok {
		return s.byState(state)
	}

	best := -1
	min := math.Inf(1)
	for i, o := range s.officers {
		oc, resolved := s.resolver.Resolve(o.Location, "", o.State)
		if !resolved {
			continue
		}
		if d := geo.Haversine(coord, oc); d < min {
			min = d
			best = i
		}
	}

	if best >= 0 && min <= MaxRadiusKM {
		o := s.officers[best]
		dist := math.Round(min*100) / 100
		return model.Assignment{
			Name:       o.DisplayName(),
			Role:       o.Role,
			Phone:      orNA(o.Phone),
			Email:      orNA(o.Email),
			Address:    orNA(o.Address),
			State:      o.State,
			DistanceKM: &dist,
		}
	}

	return s.byState(state)
}

// byState returns the first officer whose state matches, else HQFallback.
func (s *Service) byState(state string) model.Assignment {
	for _, o := range s.officers {
		if strings.EqualFold(strings.TrimSpace(o.State), strings.TrimSpace(state)) {
			return model.Assignment{
				Name:    o.DisplayName(),
				Role:    o.Role,
				Phone:   orNA(o.Phone),
				Email:   orNA(o.Email),
				Address: orNA(o.Address),
				State:   o.State,
			}
		}
	}
	zap.L().Debug("officer: no officer for state, using HQ fallback", zap.String("state", state))
	return HQFallback
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
