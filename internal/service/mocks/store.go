package mocks

import (
	"github.com/stretchr/testify/mock"

	"eventshare/internal/domain"
)

// ConfigStore is a mock implementation of service.ConfigStore
type ConfigStore struct {
	mock.Mock
}

// Load reads the stored share configuration
func (m *ConfigStore) Load() (domain.ShareConfig, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return domain.ShareConfig{}, args.Error(1)
	}
	return args.Get(0).(domain.ShareConfig), args.Error(1)
}

// Save persists the share configuration
func (m *ConfigStore) Save(cfg domain.ShareConfig) error {
	args := m.Called(cfg)
	return args.Error(0)
}
