package httptransport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "edumatch/pkg/domain-errors"
)

func intPtr(v int) *int { return &v }

func TestMintSeatRequestValidate(t *testing.T) {
	assert.NoError(t, MintSeatRequest{SeatID: "s-1", InstitutionID: "inst"}.Validate())

	err := MintSeatRequest{InstitutionID: "inst"}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	err = MintSeatRequest{SeatID: "s-1"}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestPushScoreRequestValidate(t *testing.T) {
	assert.NoError(t, PushScoreRequest{CandidateHash: "cand", Score: intPtr(0)}.Validate())

	err := PushScoreRequest{Score: intPtr(50)}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	// A missing score is distinct from an explicit zero.
	err = PushScoreRequest{CandidateHash: "cand"}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestAssignSeatRequestValidate(t *testing.T) {
	assert.NoError(t, AssignSeatRequest{SeatID: "s-1", CandidateHash: "cand"}.Validate())

	err := AssignSeatRequest{SeatID: "s-1"}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestCreateQuotaRequestValidate(t *testing.T) {
	assert.NoError(t, CreateQuotaRequest{InstitutionID: "inst", SeatCount: intPtr(0)}.Validate())

	err := CreateQuotaRequest{InstitutionID: "inst"}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
