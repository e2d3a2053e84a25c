// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"os"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doSettingsGet(ctx context.Context, req *api.SettingsGetRequest) (*api.SettingsGetResponse, error) {
	settings, err := s.store.AdminSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &api.SettingsGetResponse{Settings: settings}, nil
}

func (s *Server) doSettingsUpdate(ctx context.Context, req *api.SettingsUpdateRequest) (*api.SettingsUpdateResponse, error) {
	if req.Settings == nil {
		return nil, fmt.Errorf("settings cannot be nil: %w", os.ErrInvalid)
	}
	update := func(v *gobs.AdminSettings) error {
		v.DemoMode = req.Settings.DemoMode
		v.MockDataEnabled = req.Settings.MockDataEnabled
		v.ActiveTagIDs = req.Settings.ActiveTagIDs
		return nil
	}
	settings, err := s.store.UpdateAdminSettings(ctx, update)
	if err != nil {
		return nil, err
	}
	return &api.SettingsUpdateResponse{Settings: settings}, nil
}
