package github

import (
	"context"
	"errors"
	"fmt"
)

// Credential is the outcome of an identity lookup against the hosting API.
type Credential struct {
	Valid    bool   `json:"valid"`
	Identity string `json:"identity,omitempty"`
}

// AccessResult reports whether a repository is reachable with the configured
// credential. It is computed fresh on every call.
type AccessResult struct {
	Accessible bool   `json:"accessible"`
	Reason     string `json:"reason,omitempty"`
}

// VerifyCredential checks the configured credential by looking up its
// identity. An authentication rejection yields Valid=false; any other
// failure (network, rate limit) is returned as an error rather than being
// masked as invalidity.
func (s *Service) VerifyCredential(ctx context.Context) (Credential, error) {
	login, err := s.api.AuthenticatedUser(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Credential{Valid: false}, nil
		}
		return Credential{}, fmt.Errorf("verify credential: %w", err)
	}
	return Credential{Valid: true, Identity: login}, nil
}

// CheckAccess reports whether owner/repo is reachable. A bare not-found from
// the hosting API is ambiguous: the repository may not exist, may be private
// and out of scope, or the credential may be dead. CheckAccess separates the
// causes by re-verifying the credential, so the reason tells an operator
// which problem they actually have.
func (s *Service) CheckAccess(ctx context.Context, owner, repo string) (AccessResult, error) {
	_, err := s.api.GetRepository(ctx, owner, repo)
	if err == nil {
		return AccessResult{Accessible: true}, nil
	}

	if errors.Is(err, ErrNotFound) {
		cred, verr := s.VerifyCredential(ctx)
		if verr != nil {
			return AccessResult{}, fmt.Errorf("check access %s/%s: %w", owner, repo, verr)
		}
		if !cred.Valid {
			return AccessResult{
				Accessible: false,
				Reason:     "credential is invalid or expired",
			}, nil
		}
		return AccessResult{
			Accessible: false,
			Reason: fmt.Sprintf(
				"repository %s/%s not found, or identity %q lacks access to it (private repository or missing scope)",
				owner, repo, cred.Identity,
			),
		}, nil
	}

	return AccessResult{Accessible: false, Reason: err.Error()}, nil
}
