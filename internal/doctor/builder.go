// internal/doctor/builder.go
package doctor

import (
	"time"

	"jobsearch-ops/internal/common/config"
	commonhttp "jobsearch-ops/internal/common/http"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/common/observability"
	"jobsearch-ops/internal/installer"
	"jobsearch-ops/pkg/registry"

	vertexconfig "jobsearch-ops/internal/checks/cloud/vertex-config"
	oauthclient "jobsearch-ops/internal/checks/credentials/oauth-client"
	oauthtoken "jobsearch-ops/internal/checks/credentials/oauth-token"
	apikeys "jobsearch-ops/internal/checks/services/api-keys"
	sessionstore "jobsearch-ops/internal/checks/storage/session-store"
	tectonicbinary "jobsearch-ops/internal/checks/toolchain/tectonic-binary"
	resumefolder "jobsearch-ops/internal/checks/workspace/resume-folder"
	trackersheet "jobsearch-ops/internal/checks/workspace/tracker-sheet"
)

// BuildFromRegistry wires the concrete check handlers for every enabled
// registry entry. Registry entries with no matching handler are logged and
// skipped rather than failing the build.
func BuildFromRegistry(cfg *config.Config, reg *registry.CheckRegistry, obs *observability.Observability, log logger.Logger) *Doctor {
	d := New(config.GetDuration(cfg.Doctor.CheckTimeout), obs, log)

	probeTimeout := config.GetDuration(max(cfg.Services.Apollo.Timeout, cfg.Services.ElevenLabs.Timeout))
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	prober := commonhttp.NewClient(probeTimeout)
	runner := installer.NewExecRunner()

	for _, def := range reg.Enabled() {
		var check Check

		switch def.ID {
		case tectonicbinary.CheckID:
			tcfg := tectonicbinary.LoadConfig()
			tcfg.Binary = cfg.Toolchain.Binary
			check = tectonicbinary.NewHandler(tcfg, runner, log)
		case oauthclient.CheckID:
			check = oauthclient.NewHandler(oauthclient.LoadConfig(cfg.OAuth.ClientFile), log)
		case oauthtoken.CheckID:
			check = oauthtoken.NewHandler(oauthtoken.LoadConfig(cfg.OAuth.TokenFile), log)
		case vertexconfig.CheckID:
			check = vertexconfig.NewHandler(vertexconfig.LoadConfig(cfg.Cloud.Project, cfg.Cloud.Location), log)
		case trackersheet.CheckID:
			check = trackersheet.NewHandler(trackersheet.LoadConfig(cfg.Workspace.SpreadsheetID), log)
		case resumefolder.CheckID:
			check = resumefolder.NewHandler(resumefolder.LoadConfig(cfg.Workspace.DriveFolderID), log)
		case apikeys.CheckID:
			check = apikeys.NewHandler(apikeys.LoadConfig(cfg.Services), prober, log)
		case sessionstore.CheckID:
			check = sessionstore.NewHandler(sessionstore.LoadConfig(cfg.Sessions.URI), log)
		default:
			log.Warn("registry entry has no handler, skipping", map[string]interface{}{
				"checkId": def.ID,
			})
			continue
		}

		d.Register(def, check)
	}

	return d
}
