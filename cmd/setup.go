package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template.
//
// With --curl-file it also checks that the cURL command parses and reports what the lyrics
// client would send, so the path can be copied into lyrics.headers_file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = shared.DefaultConfigPath()
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warn("config file not written", "path", configPath, "error", err)
	} else {
		r.logger.Info("config file created", "path", configPath)
		r.writePlain("✓ Config written to %s\n", configPath)
	}

	curlFile := cmd.String("curl-file")
	if curlFile == "" {
		r.writePlainln("Next steps:")
		r.writePlain("1. Set [lyrics] base_url (and token or query keys) in %s\n", configPath)
		r.writePlain("2. Run 'lyriek players' to check that your player is visible\n")
		return nil
	}

	r.logger.Info("parsing cURL command for request headers", "file", curlFile)
	headers, err := shared.ParseCurlFile(curlFile)
	if err != nil {
		return fmt.Errorf("failed to parse cURL file: %w", err)
	}

	abs, err := filepath.Abs(curlFile)
	if err != nil {
		abs = curlFile
	}

	r.writePlain("✓ Parsed %d header(s)", len(headers.Headers))
	if headers.Cookie != "" {
		r.writePlain(" and a cookie")
	}
	r.writePlain("\n")
	r.writePlainln("Next steps:")
	r.writePlain("1. Update %s with: lyrics.headers_file = \"%s\"\n", configPath, abs)
	r.writePlain("2. Run 'lyriek lookup \"artist\" \"title\"' to test the lyrics service\n")
	return nil
}
