package llmprovider

import (
	"fmt"
	"sort"
	"time"

	"shopchat/pkg/deepseek"
	"shopchat/pkg/openai"
)

// ProviderSpec describes one provider entry from configuration
type ProviderSpec struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// BuildProviders constructs enabled providers ordered by ascending priority
func BuildProviders(specs []ProviderSpec) ([]Provider, error) {
	enabled := make([]ProviderSpec, 0, len(specs))
	for _, s := range specs {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	providers := make([]Provider, 0, len(enabled))
	for _, s := range enabled {
		switch s.Name {
		case "openai":
			client, err := openai.New(openai.Config{
				APIKey:  s.APIKey,
				Model:   s.Model,
				BaseURL: s.BaseURL,
				Timeout: s.Timeout,
			})
			if err != nil {
				return nil, fmt.Errorf("provider %s: %w", s.Name, err)
			}
			providers = append(providers, NewOpenAIAdapter(client))
		case "deepseek":
			client, err := deepseek.New(deepseek.Config{
				APIKey:  s.APIKey,
				Model:   s.Model,
				BaseURL: s.BaseURL,
				Timeout: s.Timeout,
			})
			if err != nil {
				return nil, fmt.Errorf("provider %s: %w", s.Name, err)
			}
			providers = append(providers, NewDeepSeekAdapter(client))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, s.Name)
		}
	}

	if len(providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	return providers, nil
}
