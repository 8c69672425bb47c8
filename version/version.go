// Package version holds the build version and the remote latest-version
// probe used by --version.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avast/retry-go/v4"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

const latestReleaseURL = "https://api.github.com/repos/liiga-teletext/liiga-teletext/releases/latest"

// CheckLatest asks the release feed for the newest published version and
// reports whether an upgrade exists. Network trouble is retried a few
// times and then surfaced; callers treat it as informational.
func CheckLatest(ctx context.Context, client *http.Client) (latest string, newer bool, err error) {
	var release struct {
		TagName string `json:"tag_name"`
	}

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
			if err != nil {
				return err
			}
			res, err := client.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("release check failed with status %d", res.StatusCode)
			}
			return json.NewDecoder(res.Body).Decode(&release)
		},
		retry.Attempts(3),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", false, fmt.Errorf("failed to check latest version: %w", err)
	}

	latest = strings.TrimPrefix(release.TagName, "v")
	newer, err = isNewer(latest, strings.TrimPrefix(Version, "v"))
	if err != nil {
		return latest, false, err
	}
	return latest, newer, nil
}

// isNewer compares two dotted semver strings numerically.
func isNewer(candidate, current string) (bool, error) {
	if current == "dev" {
		return false, nil
	}
	a, err := parseSemver(candidate)
	if err != nil {
		return false, err
	}
	b, err := parseSemver(current)
	if err != nil {
		return false, err
	}
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] > b[i], nil
		}
	}
	return false, nil
}

func parseSemver(v string) ([3]int, error) {
	var out [3]int
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return out, fmt.Errorf("invalid version %q", v)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("invalid version %q: %w", v, err)
		}
		out[i] = n
	}
	return out, nil
}
