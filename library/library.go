// Package library discovers playable video files under the configured
// library root and ranks them against search queries.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/util"
)

// Video is a single playable file discovered in the library.
type Video struct {
	Path  string
	Title string
	Size  int64
}

func (v Video) String() string {
	return v.Title
}

var videoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".m4v":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".wmv":  true,
	".mpg":  true,
	".mpeg": true,
	".m2ts": true,
	".ts":   true,
}

// IsVideoPath reports whether the file extension denotes a playable video.
func IsVideoPath(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Scan walks the configured library root and collects every video file.
// An empty root means the current working directory.
func Scan() ([]Video, error) {
	root := viper.GetString(key.LibraryPath)
	if root == "" {
		root = "."
	}

	var videos []Video

	err := filesystem.API().Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subtree; skip it rather than abort the scan.
			return nil
		}

		if info.IsDir() || !IsVideoPath(path) {
			return nil
		}

		videos = append(videos, Video{
			Path:  path,
			Title: util.FileStem(path),
			Size:  info.Size(),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library %s: %w", root, err)
	}

	slices.SortFunc(videos, func(a, b Video) int {
		return strings.Compare(a.Title, b.Title)
	})

	return videos, nil
}

// Search scans the library and returns videos fuzzy-matching the query,
// best matches first, capped by the configured limit.
func Search(query string) ([]Video, error) {
	videos, err := Scan()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return capped(videos), nil
	}

	titles := make([]string, len(videos))
	for i, video := range videos {
		titles[i] = video.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int {
		return a.Distance - b.Distance
	})

	matched := make([]Video, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, videos[rank.OriginalIndex])
	}

	return capped(matched), nil
}

// Closest returns the library video whose title has the smallest edit
// distance to the query. Used for "did you mean" hints when a search
// matches nothing.
func Closest(query string, videos []Video) mo.Option[Video] {
	if len(videos) == 0 {
		return mo.None[Video]()
	}

	query = strings.ToLower(query)
	best := videos[0]
	bestDistance := levenshtein.Distance(query, strings.ToLower(best.Title))

	for _, video := range videos[1:] {
		if distance := levenshtein.Distance(query, strings.ToLower(video.Title)); distance < bestDistance {
			best, bestDistance = video, distance
		}
	}

	return mo.Some(best)
}

func capped(videos []Video) []Video {
	limit := viper.GetInt(key.LibrarySearchLimit)
	if limit > 0 && len(videos) > limit {
		return videos[:limit]
	}
	return videos
}
