// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const SettingsGetPath = "/predict/settings/get"

type SettingsGetRequest struct {
}

type SettingsGetResponse struct {
	Settings *gobs.AdminSettings
}

const SettingsUpdatePath = "/predict/settings/update"

type SettingsUpdateRequest struct {
	Settings *gobs.AdminSettings
}

type SettingsUpdateResponse struct {
	Settings *gobs.AdminSettings
}
