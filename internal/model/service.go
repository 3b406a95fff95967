package model

import "strings"

// Service is a single bookable item on a salon pricelist. Price and
// duration are display strings owned by the source booking platform;
// the editor carries them through without interpreting them.
type Service struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Key returns the normalized name used for best-effort matching between
// independently produced structures.
func (s Service) Key() string {
	return strings.ToLower(strings.TrimSpace(s.Name))
}

// Clone returns a deep copy of the service.
func (s Service) Clone() Service {
	out := s
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}
