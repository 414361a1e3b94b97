package github

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// InMem is an in-memory API implementation for unit tests. It models just
// enough of the hosting API: an authenticated identity, repositories with
// files, directory listings derived from file paths, and issue creation.
type InMem struct {
	mu         sync.Mutex
	login      string
	badToken   bool
	repos      map[string]string            // "owner/repo" -> default branch
	files      map[string]map[string]string // "owner/repo" -> path -> content
	failDirs   map[string]bool              // "owner/repo/dir" listings that error
	issues     []CreatedIssue
	nextIssue  int
	CallCounts map[string]int // method name -> invocations
}

// NewInMem creates an empty fake with a valid identity "octocat".
func NewInMem() *InMem {
	return &InMem{
		login:      "octocat",
		repos:      make(map[string]string),
		files:      make(map[string]map[string]string),
		failDirs:   make(map[string]bool),
		nextIssue:  1,
		CallCounts: make(map[string]int),
	}
}

// SetLogin sets the identity returned for the credential.
func (m *InMem) SetLogin(login string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.login = login
}

// SetBadCredential makes every authenticated call fail with ErrUnauthorized.
func (m *InMem) SetBadCredential(bad bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badToken = bad
}

// AddRepository registers owner/repo with the given default branch.
func (m *InMem) AddRepository(owner, repo, defaultBranch string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := owner + "/" + repo
	m.repos[key] = defaultBranch
	if m.files[key] == nil {
		m.files[key] = make(map[string]string)
	}
}

// SetFile seeds a file. The repository must have been added first.
func (m *InMem) SetFile(owner, repo, path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[owner+"/"+repo][path] = content
}

// FailDirectory makes listings of the given directory path fail.
func (m *InMem) FailDirectory(owner, repo, dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDirs[owner+"/"+repo+"/"+dir] = true
}

// CreatedIssue records a CreateIssue call and its result.
type CreatedIssue struct {
	Owner  string
	Repo   string
	Title  string
	Body   string
	Labels []string
	Issue  Issue
}

// Issues returns all issues created so far.
func (m *InMem) Issues() []CreatedIssue {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CreatedIssue, len(m.issues))
	copy(out, m.issues)
	return out
}

func (m *InMem) count(method string) {
	m.CallCounts[method]++
}

// AuthenticatedUser implements API.
func (m *InMem) AuthenticatedUser(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("AuthenticatedUser")
	if m.badToken {
		return "", fmt.Errorf("get authenticated user: %w", ErrUnauthorized)
	}
	return m.login, nil
}

// GetRepository implements API.
func (m *InMem) GetRepository(_ context.Context, owner, repo string) (*Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetRepository")
	if m.badToken {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, ErrUnauthorized)
	}
	branch, ok := m.repos[owner+"/"+repo]
	if !ok {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, ErrNotFound)
	}
	return &Repository{Owner: owner, Name: repo, DefaultBranch: branch}, nil
}

// GetContents implements API. Directory listings are computed from the
// seeded file paths.
func (m *InMem) GetContents(_ context.Context, owner, repo, path string) (*FileContent, []TreeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetContents")
	if m.badToken {
		return nil, nil, fmt.Errorf("get contents %s/%s/%s: %w", owner, repo, path, ErrUnauthorized)
	}

	repoFiles, ok := m.files[owner+"/"+repo]
	if !ok {
		return nil, nil, fmt.Errorf("get contents %s/%s/%s: %w", owner, repo, path, ErrNotFound)
	}

	path = strings.Trim(path, "/")
	if content, ok := repoFiles[path]; ok {
		return &FileContent{
			Path:    path,
			SHA:     fakeSHA(content),
			Size:    int64(len(content)),
			Content: content,
		}, nil, nil
	}

	if m.failDirs[owner+"/"+repo+"/"+path] {
		return nil, nil, fmt.Errorf("get contents %s/%s/%s: listing failed", owner, repo, path)
	}

	entries := m.listDir(repoFiles, path)
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("get contents %s/%s/%s: %w", owner, repo, path, ErrNotFound)
	}
	return nil, entries, nil
}

// listDir returns the immediate children of dir, files and subdirectories.
func (m *InMem) listDir(repoFiles map[string]string, dir string) []TreeEntry {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	seen := make(map[string]TreeEntry)
	for path, content := range repoFiles {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		remainder := path[len(prefix):]
		if name, _, nested := strings.Cut(remainder, "/"); nested {
			childDir := prefix + name
			seen[childDir] = TreeEntry{Path: childDir, Kind: KindDirectory}
		} else {
			seen[path] = TreeEntry{
				Path: path,
				SHA:  fakeSHA(content),
				Size: int64(len(content)),
				Kind: KindFile,
			}
		}
	}

	entries := make([]TreeEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// GetBranchHead implements API with a deterministic fake commit SHA.
func (m *InMem) GetBranchHead(_ context.Context, owner, repo, branch string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetBranchHead")
	if m.badToken {
		return "", fmt.Errorf("get ref %s for %s/%s: %w", branch, owner, repo, ErrUnauthorized)
	}
	if _, ok := m.repos[owner+"/"+repo]; !ok {
		return "", fmt.Errorf("get ref %s for %s/%s: %w", branch, owner, repo, ErrNotFound)
	}
	return fakeSHA(owner + "/" + repo + "@" + branch), nil
}

// GetRecursiveTree implements API by listing every seeded file.
func (m *InMem) GetRecursiveTree(_ context.Context, owner, repo, _ string) ([]TreeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetRecursiveTree")
	if m.badToken {
		return nil, fmt.Errorf("get tree for %s/%s: %w", owner, repo, ErrUnauthorized)
	}
	repoFiles, ok := m.files[owner+"/"+repo]
	if !ok {
		return nil, fmt.Errorf("get tree for %s/%s: %w", owner, repo, ErrNotFound)
	}

	dirs := make(map[string]bool)
	entries := make([]TreeEntry, 0, len(repoFiles))
	for path, content := range repoFiles {
		entries = append(entries, TreeEntry{
			Path: path,
			SHA:  fakeSHA(content),
			Size: int64(len(content)),
			Kind: KindFile,
		})
		for d := path; strings.Contains(d, "/"); {
			d = d[:strings.LastIndex(d, "/")]
			dirs[d] = true
		}
	}
	for d := range dirs {
		entries = append(entries, TreeEntry{Path: d, Kind: KindDirectory})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// CreateIssue implements API.
func (m *InMem) CreateIssue(_ context.Context, owner, repo, title, body string, labels []string) (*Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("CreateIssue")
	if m.badToken {
		return nil, fmt.Errorf("create issue in %s/%s: %w", owner, repo, ErrUnauthorized)
	}
	if _, ok := m.repos[owner+"/"+repo]; !ok {
		return nil, fmt.Errorf("create issue in %s/%s: %w", owner, repo, ErrNotFound)
	}

	issue := Issue{
		Number: m.nextIssue,
		URL:    fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, m.nextIssue),
	}
	m.nextIssue++
	m.issues = append(m.issues, CreatedIssue{
		Owner:  owner,
		Repo:   repo,
		Title:  title,
		Body:   body,
		Labels: labels,
		Issue:  issue,
	})
	return &issue, nil
}

func fakeSHA(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
