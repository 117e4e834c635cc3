package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultProfile = "default"

// ProfileInfo locates one writer's saved reports. The directory name is a
// hash of the profile name so any display name is safe on disk.
type ProfileInfo struct {
	ID         string
	Name       string
	Root       string
	ReportsDir string
}

type profileMeta struct {
	Name string `json:"name"`
}

func CreateProfile(workspaceRoot, name string) (*ProfileInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProfile
	}
	id := profileHash(name)
	root := filepath.Join(workspaceRoot, "profiles", id)
	reports := filepath.Join(root, "reports")
	if err := os.MkdirAll(reports, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	metaPath := filepath.Join(root, "profile.json")
	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		raw, err := json.MarshalIndent(profileMeta{Name: name}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal profile: %w", err)
		}
		if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
			return nil, fmt.Errorf("write profile: %w", err)
		}
	}

	return &ProfileInfo{ID: id, Name: name, Root: root, ReportsDir: reports}, nil
}

// SaveReport writes report as reports/<runID>.json and returns the path.
func (p *ProfileInfo) SaveReport(runID string, report any) (string, error) {
	runID = sanitizeRunID(runID)
	if runID == "" {
		return "", fmt.Errorf("save report: empty run id")
	}
	path := filepath.Join(p.ReportsDir, runID+".json")
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Reports lists saved report paths oldest first. Run IDs are ULIDs, so name
// order is creation order.
func (p *ProfileInfo) Reports() ([]string, error) {
	entries, err := os.ReadDir(p.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, filepath.Join(p.ReportsDir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func profileHash(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeRunID(id string) string {
	base := filepath.Base(strings.TrimSpace(id))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(base, "..", "")
}
