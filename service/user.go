package service

import (
	"context"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/auth"
	"github.com/canonical/ratings/log"
	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/store"
)

// clientHashLen is the fixed length §4.7 requires of Authenticate's id.
const clientHashLen = 64

// UserService implements pb.UserServer: authentication, voting, a
// caller's own vote history, and account deletion.
type UserService struct {
	pb.UnimplementedUserServer
	Deps
}

// NewUserService builds a UserService over deps.
func NewUserService(deps Deps) *UserService {
	return &UserService{Deps: deps}
}

func requireClaim(ctx context.Context) (auth.Claim, error) {
	claim, ok := auth.ClaimFromContext(ctx)
	if !ok {
		return auth.Claim{}, apperr.Unauthenticatedf("missing claim")
	}
	return claim, nil
}

func (s *UserService) Authenticate(ctx context.Context, req *pb.AuthenticateRequest) (*pb.AuthenticateResponse, error) {
	if len(req.ID) != clientHashLen {
		return nil, toStatus(apperr.Invalid("client_hash must be 64 characters"))
	}

	if _, err := s.Store.CreateOrSeen(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	token, err := s.Codec.Issue(req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.AuthenticateResponse{Token: token}, nil
}

func (s *UserService) Delete(ctx context.Context, _ *pb.DeleteRequest) (*pb.DeleteResponse, error) {
	claim, err := requireClaim(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Store.DeleteUser(ctx, claim.Subject); err != nil {
		return nil, toStatus(err)
	}

	return &pb.DeleteResponse{}, nil
}

func (s *UserService) Vote(ctx context.Context, req *pb.VoteRequest) (*pb.VoteResponse, error) {
	claim, err := requireClaim(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if req.SnapID == "" {
		return nil, toStatus(apperr.Invalid("snap_id must not be empty"))
	}
	if req.SnapRevision < 0 {
		return nil, toStatus(apperr.Invalid("snap_revision must be non-negative"))
	}

	if _, err := s.Store.SaveVote(ctx, claim.Subject, store.VoteInput{
		SnapID:       req.SnapID,
		SnapRevision: req.SnapRevision,
		VoteUp:       req.VoteUp,
	}); err != nil {
		return nil, toStatus(err)
	}

	// Opportunistic, fire-and-forget: the vote itself already succeeded.
	s.Coordinator.EnsureCategoriesAsync(req.SnapID)

	return &pb.VoteResponse{}, nil
}

func (s *UserService) GetSnapVotes(ctx context.Context, req *pb.GetSnapVotesRequest) (*pb.GetSnapVotesResponse, error) {
	claim, err := requireClaim(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	votes, err := s.Store.VotesByClientAndOptionalSnap(ctx, claim.Subject, &req.SnapID)
	if err != nil {
		return nil, toStatus(err)
	}

	// Opportunistic, same as Vote: a lookup is as good a signal as a
	// vote that this snap is worth categorizing.
	s.Coordinator.EnsureCategoriesAsync(req.SnapID)

	entries := make([]pb.VoteEntry, len(votes))
	for i, v := range votes {
		// Display-name enrichment failures are swallowed here, same as
		// the coordinator's category lookups: the caller's own vote
		// history is still useful without a name attached.
		name, err := s.Catalog.DisplayName(ctx, v.SnapID)
		if err != nil {
			log.Warn().Str("snap_id", v.SnapID).Err(err).Msg("display name lookup failed for vote history entry")
		}

		entries[i] = pb.VoteEntry{
			SnapID:       v.SnapID,
			SnapRevision: v.SnapRevision,
			VoteUp:       v.VoteUp,
			Timestamp:    toTimestamp(v.Created),
			SnapName:     name,
		}
	}

	return &pb.GetSnapVotesResponse{Votes: entries}, nil
}
