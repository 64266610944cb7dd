package scanner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Berachem/reposcan/internal/types"
)

// ScanRepo clones a remote git repository into a temporary directory,
// scans it, and removes the checkout. A clone failure is fatal: no
// partial report is produced.
func (s *Scanner) ScanRepo(ctx context.Context, repoURL string) (*types.ScanReport, error) {
	dir, err := os.MkdirTemp("", "reposcan-"+repoName(repoURL)+"-*")
	if err != nil {
		return nil, s.fail(fmt.Errorf("creating checkout directory: %w", err))
	}
	defer os.RemoveAll(dir)

	s.log.Infow("cloning repository", "url", repoURL, "dir", dir)
	if err := s.cloneRepo(ctx, repoURL, dir); err != nil {
		return nil, s.fail(err)
	}

	return s.scan(ctx, dir, repoURL, &types.Source{Type: "git", URL: repoURL})
}

// repoName derives a short name from a repository URL, for the checkout
// directory prefix.
func repoName(repoURL string) string {
	name := strings.TrimSuffix(repoURL, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repo"
	}
	return name
}

// cloneRepo shallow-clones repoURL into dest, bounded by the configured
// clone timeout.
func (s *Scanner) cloneRepo(ctx context.Context, repoURL, dest string) error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is not available: %w", err)
	}

	cloneCtx := ctx
	if s.cfg.CloneTimeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, s.cfg.CloneTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", "1", repoURL, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("cloning %s: %s", repoURL, msg)
	}
	return nil
}
