package application

import (
	"strings"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
)

// ResolveVoterIdentity builds the dual identity for a request. The anonymous
// token is minted upstream by the edge middleware and must already exist;
// voting is never permitted for an unidentified caller. The authenticated
// user id, when present, rides along for attribution and is not part of the
// uniqueness key.
func ResolveVoterIdentity(voterToken string, userID string) (entities.VoterIdentity, error) {
	token := strings.TrimSpace(voterToken)
	if token == "" {
		return entities.VoterIdentity{}, domainerrors.ErrVoterTokenMissing
	}
	return entities.VoterIdentity{
		VoterToken: token,
		UserID:     strings.TrimSpace(userID),
	}, nil
}
