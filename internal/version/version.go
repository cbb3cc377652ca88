// Package version checks GitHub releases for a newer CLI build.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultReleasesURL = "https://api.github.com/repos/sportbook-io/sportbook-cli/releases"
	requestTimeout     = 10 * time.Second
)

// releasesURL can be overridden in tests.
var releasesURL = defaultReleasesURL

// Release is the slice of the GitHub release payload we care about.
type Release struct {
	TagName string `json:"tag_name"`
}

// Latest fetches the newest released version tag, e.g. "v1.2.0".
func Latest() (string, error) {
	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(releasesURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	var versions []string
	for _, release := range releases {
		if strings.HasPrefix(release.TagName, "v") {
			versions = append(versions, release.TagName)
		}
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no releases found")
	}

	sort.Slice(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) > 0
	})
	return versions[0], nil
}

// parse splits a "vMAJOR.MINOR.PATCH" string into its numeric parts.
func parse(version string) (int, int, int, error) {
	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid version format: %s", version)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid version component: %s", part)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// Compare orders two version strings semantically. It returns -1, 0 or
// 1 as a is older than, equal to or newer than b. Unparseable versions
// fall back to lexical order.
func Compare(a, b string) int {
	aMajor, aMinor, aPatch, errA := parse(a)
	bMajor, bMinor, bPatch, errB := parse(b)

	if errA != nil || errB != nil {
		a = strings.TrimPrefix(a, "v")
		b = strings.TrimPrefix(b, "v")
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}

	pairs := [][2]int{{aMajor, bMajor}, {aMinor, bMinor}, {aPatch, bPatch}}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// UpdateAvailable reports whether a newer release exists. Development
// builds never check.
func UpdateAvailable(current string) (bool, string, error) {
	if current == "dev" {
		return false, "", nil
	}

	latest, err := Latest()
	if err != nil {
		return false, "", err
	}

	if Compare(current, latest) < 0 {
		return true, latest, nil
	}
	return false, "", nil
}
