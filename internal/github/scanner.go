package github

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// DefaultExtensions is the extension allow-list applied when a scan does not
// supply its own. These are the document formats the parsing layer handles.
var DefaultExtensions = []string{".json", ".md", ".txt", ".yaml", ".yml"}

// Scan walks owner/repo under root and returns the files whose extension is
// in the allow-list, each enriched with a raw-content download locator for
// the repository's default branch.
//
// The credential is verified up front so a dead token fails as an AuthError
// instead of surfacing later as a confusing access denial.
func (s *Service) Scan(ctx context.Context, owner, repo, root string, extensions []string) ([]RepositoryFile, error) {
	cred, err := s.VerifyCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s/%s: %w", owner, repo, err)
	}
	if !cred.Valid {
		return nil, &AuthError{Reason: "credential is invalid or expired"}
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	entries, branch, err := s.Walk(ctx, owner, repo, root)
	if err != nil {
		return nil, err
	}

	// The tree API carries no per-file timestamps, so LastModified is the
	// scan's wall-clock time. Callers must not treat it as authoritative.
	scannedAt := time.Now().UTC()

	files := make([]RepositoryFile, 0, len(entries))
	for _, e := range entries {
		if !allowed[strings.ToLower(path.Ext(e.Path))] {
			continue
		}
		files = append(files, RepositoryFile{
			Path:         e.Path,
			Size:         e.Size,
			LastModified: scannedAt,
			SHA:          e.SHA,
			DownloadURL:  s.rawURL(owner, repo, branch, e.Path),
		})
	}
	return files, nil
}

// rawURL composes the raw-content locator {rawHost}/{owner}/{repo}/{branch}/{path}.
func (s *Service) rawURL(owner, repo, branch, filePath string) string {
	return fmt.Sprintf("https://%s/%s/%s/%s/%s", s.rawHost, owner, repo, branch, filePath)
}
