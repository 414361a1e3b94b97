package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Walk lists every file under root in owner/repo and returns the entries
// together with the repository's default branch.
//
// The repository-level access check is a hard precondition: if it fails, the
// walk returns an AccessError carrying the check's diagnosis before any tree
// call is made. Failures on nested directories mid-walk are soft-skipped
// instead (logged and omitted from the result): a single inaccessible
// subtree is usually a transient or scoped-permission issue not worth
// failing the whole scan over.
//
// No ordering is guaranteed across siblings or recursion depth.
func (s *Service) Walk(ctx context.Context, owner, repo, root string) ([]TreeEntry, string, error) {
	access, err := s.CheckAccess(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("walk %s/%s: %w", owner, repo, err)
	}
	if !access.Accessible {
		return nil, "", &AccessError{Owner: owner, Repo: repo, Reason: access.Reason}
	}

	repository, err := s.api.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("walk %s/%s: %w", owner, repo, err)
	}
	branch := repository.DefaultBranch

	root = strings.Trim(root, "/")
	if root == "" {
		entries, err := s.walkFullTree(ctx, owner, repo, branch)
		if err != nil {
			return nil, "", err
		}
		return entries, branch, nil
	}

	entries, err := s.walkSubtree(ctx, owner, repo, root)
	if err != nil {
		return nil, "", err
	}
	return entries, branch, nil
}

// walkFullTree lists the whole repository in a single recursive tree call
// from the branch head. One network call regardless of file count.
func (s *Service) walkFullTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	head, err := s.api.GetBranchHead(ctx, owner, repo, branch)
	if err != nil {
		return nil, fmt.Errorf("walk %s/%s: %w", owner, repo, err)
	}

	tree, err := s.api.GetRecursiveTree(ctx, owner, repo, head)
	if err != nil {
		return nil, fmt.Errorf("walk %s/%s: %w", owner, repo, err)
	}

	files := make([]TreeEntry, 0, len(tree))
	for _, e := range tree {
		if e.Kind == KindFile {
			files = append(files, e)
		}
	}
	return files, nil
}

// walkSubtree enumerates a rooted subtree with an explicit worklist of
// pending directories rather than recursion, so the soft-skip policy is a
// single branch in the loop and stack depth stays flat on large trees.
// Directory listings are issued one at a time; no concurrent fan-out.
func (s *Service) walkSubtree(ctx context.Context, owner, repo, root string) ([]TreeEntry, error) {
	file, children, err := s.api.GetContents(ctx, owner, repo, root)
	if err != nil {
		return nil, fmt.Errorf("walk %s/%s at %q: %w", owner, repo, root, err)
	}

	if file != nil {
		return []TreeEntry{{Path: file.Path, SHA: file.SHA, Size: file.Size, Kind: KindFile}}, nil
	}

	var files []TreeEntry
	var pending []string
	collect := func(entries []TreeEntry) {
		for _, e := range entries {
			if e.Kind == KindDirectory {
				pending = append(pending, e.Path)
			} else {
				files = append(files, e)
			}
		}
	}

	collect(children)
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		_, entries, err := s.api.GetContents(ctx, owner, repo, dir)
		if err != nil {
			slog.Warn("Skipping inaccessible directory",
				"owner", owner, "repo", repo, "path", dir, "error", err)
			continue
		}
		collect(entries)
	}
	return files, nil
}
