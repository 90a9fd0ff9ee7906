package snapshot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
)

// SaveHost stores the dataset of h under a new id and returns the id.
func SaveHost(s Store, h *memhost.Host, label string) (string, error) {
	data, err := h.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}
	id := uuid.NewString()
	if err := s.Save(id, label, data); err != nil {
		return "", err
	}
	return id, nil
}

// LoadHost rebuilds the host saved under id.
func LoadHost(s Store, id string) (*memhost.Host, error) {
	data, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	h, err := memhost.UnmarshalJSONDataset(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return h, nil
}
