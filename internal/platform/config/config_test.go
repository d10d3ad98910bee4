// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/atelier/internal/platform/config"
	"github.com/taibuivan/atelier/internal/platform/constants"
)

/*
TestLoadFrom_Defaults verifies defaults apply when only credentials are set.
*/
func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"NOTION_API_KEY":     "secret_x",
		"NOTION_WORKS_DB_ID": "abcd1234abcd1234abcd1234abcd1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "https://api.notion.com/v1", cfg.NotionBaseURL)
	assert.Equal(t, "https://www.notion.so/api/v3", cfg.NotionRecordURL)
	assert.Equal(t, "2022-06-28", cfg.NotionVersion)
	assert.Equal(t, constants.DefaultRevalidateInterval, cfg.Revalidate())
	assert.Empty(t, cfg.StaticPages)
}

/*
TestLoadFrom_MissingCredentialsIsNotFatal verifies startup succeeds without Notion keys.
*/
func TestLoadFrom_MissingCredentialsIsNotFatal(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, cfg.NotionAPIKey)
	assert.Empty(t, cfg.NotionWorksDBID)
}

/*
TestLoadFrom_StaticPages verifies only NOTION_{SLUG}_ID_{LOCALE} keys are captured.
*/
func TestLoadFrom_StaticPages(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"NOTION_CV_ID_JP":        "cv-ja",
		"NOTION_CV_ID_EN":        "cv-en",
		"NOTION_STATEMENT_ID_JP": "statement-ja",
		"NOTION_CONTACT_ID_EN":   "",
		"NOTION_WORKS_DB_ID":     "db",
		"NOTION_API_KEY":         "key",
		"HOME":                   "/root",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"NOTION_CV_ID_JP":        "cv-ja",
		"NOTION_CV_ID_EN":        "cv-en",
		"NOTION_STATEMENT_ID_JP": "statement-ja",
	}, cfg.StaticPages)
}

/*
TestLoadFrom_Invalid verifies malformed values are rejected.
*/
func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non_numeric_revalidate", map[string]string{"REVALIDATE_SECONDS": "soon"}},
		{"negative_revalidate", map[string]string{"REVALIDATE_SECONDS": "-1"}},
		{"bad_debug_flag", map[string]string{"DEBUG": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(tt.env)
			assert.Error(t, err)
		})
	}
}

/*
TestConfig_RevalidateDisable verifies the kill switch zeroes the interval.
*/
func TestConfig_RevalidateDisable(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"REVALIDATE_SECONDS": "120", "REVALIDATE_DISABLE": "true"})
	require.NoError(t, err)
	assert.Zero(t, cfg.Revalidate())

	cfg, err = config.LoadFrom(map[string]string{"REVALIDATE_SECONDS": "120"})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Revalidate())
}
