package stereo

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sylc-player/sylc/log"
	"github.com/sylc-player/sylc/probe"
)

// Analyzer orchestrates the probe gateway and the pure classifier, and owns
// the fallback-to-filename-heuristic policy. It never returns an error:
// every failure path yields a well-formed Result carrying a diagnostic.
type Analyzer struct {
	gateway *probe.Gateway
	cache   *resultCacher
}

// NewAnalyzer returns an Analyzer using the platform probe gateway and the
// persistent result cache.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		gateway: probe.NewGateway(),
		cache:   defaultResultCacher,
	}
}

// NewAnalyzerWith allows injecting the gateway; the persistent cache is
// disabled. Intended for tests.
func NewAnalyzerWith(gateway *probe.Gateway) *Analyzer {
	return &Analyzer{gateway: gateway}
}

// Analyze probes path and classifies its stereoscopic layout. On any probe
// failure the filename heuristic decides instead and AnalysisError records
// why.
func (a *Analyzer) Analyze(ctx context.Context, path string) Result {
	if a.cache != nil {
		if cached := a.cache.Get(path); cached.IsPresent() {
			log.Debugf("3d analysis cache hit for %s", path)
			return cached.MustGet()
		}
	}

	report, err := a.gateway.Probe(ctx, path)
	if err != nil {
		log.Warnf("3d analysis degraded for %s: %v", path, err)
		return fallbackFromFilename(path, err)
	}

	result := Classify(report)
	log.Infof("analyzed %s: 3d=%v mode=%s mvc=%v %dx%d",
		path, result.Is3D, result.StereoMode, result.HasMVCTrack, result.Width, result.Height)

	if a.cache != nil {
		if err := a.cache.Set(path, result); err != nil {
			log.Warnf("persist 3d analysis for %s: %v", path, err)
		}
	}

	return result
}

// fallbackFromFilename performs the best-effort classification used when
// metadata probing is unavailable. The diagnostic from the probe failure is
// preserved on the result.
func fallbackFromFilename(path string, cause error) Result {
	result := Result{StereoMode: ModeNone, AnalysisError: cause.Error()}

	name := strings.ToLower(filepath.Base(path))
	has := func(s string) bool { return strings.Contains(name, s) }

	// Top-bottom names also contain "3d", so that branch is checked first.
	if has("3d") && (has("tab") || has("htab")) {
		result.Is3D = true
		result.StereoMode = ModeTAB
	} else if has("3d") || has("sbs") || has("hsbs") {
		result.Is3D = true
		result.StereoMode = ModeSBS
	}

	return result
}
