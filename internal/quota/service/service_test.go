package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"edumatch/internal/platform/keylock"
	"edumatch/internal/quota"
	dErrors "edumatch/pkg/domain-errors"
)

// =============================================================================
// Quota Service Test Suite
// =============================================================================

type QuotaServiceSuite struct {
	suite.Suite
	store   *quota.InMemoryStore
	service *Service
}

func TestQuotaServiceSuite(t *testing.T) {
	suite.Run(t, new(QuotaServiceSuite))
}

func (s *QuotaServiceSuite) SetupTest() {
	s.store = quota.NewInMemoryStore()

	var err error
	s.service, err = New(s.store, keylock.New())
	s.Require().NoError(err)
}

func (s *QuotaServiceSuite) TestSet() {
	ctx := context.Background()

	s.Run("sets a quota", func() {
		q, err := s.service.Set(ctx, "inst-1", 40)
		s.NoError(err)
		s.Equal(40, q.SeatCount)
	})

	s.Run("overwrites an existing quota", func() {
		_, err := s.service.Set(ctx, "inst-1", 12)
		s.NoError(err)

		count, err := s.service.Get(ctx, "inst-1")
		s.NoError(err)
		s.Equal(12, count)
	})

	s.Run("zero is a valid quota", func() {
		_, err := s.service.Set(ctx, "inst-1", 0)
		s.NoError(err)
	})

	s.Run("negative quota rejected", func() {
		_, err := s.service.Set(ctx, "inst-1", -1)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing institution rejected", func() {
		_, err := s.service.Set(ctx, "", 5)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *QuotaServiceSuite) TestGet() {
	ctx := context.Background()

	s.Run("unconfigured institution defaults to zero", func() {
		count, err := s.service.Get(ctx, "inst-never")
		s.NoError(err)
		s.Equal(0, count)
	})
}

func (s *QuotaServiceSuite) TestList() {
	ctx := context.Background()

	_, err := s.service.Set(ctx, "inst-b", 2)
	s.Require().NoError(err)
	_, err = s.service.Set(ctx, "inst-a", 1)
	s.Require().NoError(err)

	quotas, err := s.service.List(ctx)
	s.NoError(err)
	s.Require().Len(quotas, 2)
	s.Equal("inst-a", quotas[0].Institution.String())
	s.Equal("inst-b", quotas[1].Institution.String())
}
