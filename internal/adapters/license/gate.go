// Package license implements the access gate from local license state: a
// stored license key with expiry, falling back to a time-limited free
// trial anchored to the installation date.
package license

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/minutes/internal/ports/secondary"
)

const (
	licenseFile = "license.json"
	installFile = "install.json"

	// DefaultTrialDays is the free trial length from first run.
	DefaultTrialDays = 14
)

// License is the locally stored license record.
type License struct {
	Email      string `json:"email,omitempty"`
	LicenseKey string `json:"license_key"`
	Expiry     string `json:"expiry"` // RFC 3339
}

// installRecord anchors the free trial and identifies this installation.
type installRecord struct {
	InstallationID string `json:"installation_id"`
	InstalledAt    string `json:"installed_at"` // RFC 3339
}

// Gate implements secondary.AccessGate and secondary.CredentialSource.
type Gate struct {
	dir       string
	trialDays int
	clock     secondary.Clock

	mu      sync.Mutex
	install *installRecord
}

// NewGate creates a gate reading license state from dir.
func NewGate(dir string, trialDays int, clock secondary.Clock) *Gate {
	if trialDays <= 0 {
		trialDays = DefaultTrialDays
	}
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	return &Gate{dir: dir, trialDays: trialDays, clock: clock}
}

// Check answers whether remote extraction may be used. A missing or
// unreadable license is not an error; it just falls through to the trial.
func (g *Gate) Check(ctx context.Context) (secondary.AccessDecision, error) {
	now := g.clock.Now()

	if lic, err := g.loadLicense(); err == nil && lic != nil {
		expiry, perr := time.Parse(time.RFC3339, lic.Expiry)
		if perr == nil && expiry.After(now) {
			return secondary.AccessDecision{HasAccess: true, Reason: "license"}, nil
		}
	}

	install, err := g.ensureInstall(now)
	if err != nil {
		return secondary.AccessDecision{}, fmt.Errorf("failed to load installation record: %w", err)
	}
	installedAt, err := time.Parse(time.RFC3339, install.InstalledAt)
	if err != nil {
		return secondary.AccessDecision{}, fmt.Errorf("invalid installation date: %w", err)
	}

	trialEnd := installedAt.AddDate(0, 0, g.trialDays)
	if trialEnd.After(now) {
		days := int(trialEnd.Sub(now).Hours()/24) + 1
		return secondary.AccessDecision{
			HasAccess: true,
			Reason:    fmt.Sprintf("free_trial (%d days remaining)", days),
		}, nil
	}

	return secondary.AccessDecision{HasAccess: false, Reason: "no_access"}, nil
}

// Credentials returns the stored license key and installation id for the
// remote call's auth headers. Either may be empty.
func (g *Gate) Credentials(ctx context.Context) (string, string) {
	key := ""
	if lic, err := g.loadLicense(); err == nil && lic != nil {
		key = lic.LicenseKey
	}
	installID := ""
	if install, err := g.ensureInstall(g.clock.Now()); err == nil {
		installID = install.InstallationID
	}
	return key, installID
}

// SaveLicense stores a license record.
func (g *Gate) SaveLicense(lic *License) error {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return fmt.Errorf("failed to create license dir: %w", err)
	}
	data, err := json.MarshalIndent(lic, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal license: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.dir, licenseFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

func (g *Gate) loadLicense() (*License, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, licenseFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lic License
	if err := json.Unmarshal(data, &lic); err != nil {
		return nil, fmt.Errorf("failed to parse license: %w", err)
	}
	return &lic, nil
}

// ensureInstall loads the installation record, creating one with a fresh
// UUID on first run.
func (g *Gate) ensureInstall(now time.Time) (*installRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.install != nil {
		return g.install, nil
	}

	path := filepath.Join(g.dir, installFile)
	data, err := os.ReadFile(path)
	if err == nil {
		var rec installRecord
		if jerr := json.Unmarshal(data, &rec); jerr != nil {
			return nil, fmt.Errorf("failed to parse installation record: %w", jerr)
		}
		g.install = &rec
		return g.install, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	rec := installRecord{
		InstallationID: uuid.NewString(),
		InstalledAt:    now.UTC().Format(time.RFC3339),
	}
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create license dir: %w", err)
	}
	out, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal installation record: %w", err)
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return nil, fmt.Errorf("failed to write installation record: %w", err)
	}
	g.install = &rec
	return g.install, nil
}
